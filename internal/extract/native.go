package extract

import (
	"log/slog"
	"strings"

	"github.com/syllabushack/contenttools/internal/pdfdoc"
)

// PageText is one extracted page. Page is the 1-based source page index.
type PageText struct {
	Page int
	Text string
}

// ExtractNative pulls the text layer page by page. Pages with no text after
// trimming are skipped, so the result may be shorter than the document.
func ExtractNative(doc pdfdoc.Document, logger *slog.Logger) []PageText {
	var out []PageText
	for i := 1; i <= doc.NumPages(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			logger.Warn("native text failed", "path", doc.Path(), "page", i, "error", err)
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			out = append(out, PageText{Page: i, Text: t})
		}
	}
	return out
}
