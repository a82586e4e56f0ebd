package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/syllabushack/contenttools/internal/ai"
	"github.com/syllabushack/contenttools/internal/pdfdoc"
	"github.com/syllabushack/contenttools/internal/raster"
)

// DefaultScale renders pages at twice the PDF resolution (144 DPI).
const DefaultScale = 2.0

// OCR is the image-based extraction path. It is built once per run; when the
// path cannot be used (no credential, no renderer, engine not compiled in)
// Unavailable holds the reason and every document needing OCR is refused.
type OCR struct {
	Renderer   raster.Renderer
	Recognizer ai.Recognizer
	Throttle   Throttle
	Scale      float64
	// MaxImagePx bounds the longer side of page images; 0 keeps the rendered size.
	MaxImagePx int

	Unavailable error

	Logger *slog.Logger
	// Progress receives a carriage-return progress line per page.
	Progress io.Writer
}

func (o *OCR) defaults() {
	if o.Throttle == nil {
		o.Throttle = FixedDelay(DefaultDelay)
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
}

// OCRStats counts per-page outcomes of one document.
type OCRStats struct {
	Attempted int
	Failed    int
}

// Extract renders and recognizes every page in order. A failing page is
// logged and skipped; the remaining pages are still attempted. Requests are
// separated by the throttle. Only context cancellation stops the loop early.
func (o *OCR) Extract(ctx context.Context, doc pdfdoc.Document) ([]PageText, OCRStats, error) {
	o.defaults()
	var out []PageText
	var stats OCRStats
	n := doc.NumPages()
	for i := 1; i <= n; i++ {
		if i > 1 {
			if err := o.Throttle.Wait(ctx); err != nil {
				return out, stats, err
			}
		}
		fmt.Fprintf(o.Progress, "OCR page %d/%d...\r", i, n)
		stats.Attempted++
		text, err := o.page(ctx, doc.Path(), i)
		if err != nil {
			stats.Failed++
			o.Logger.Warn("ocr page failed", "path", doc.Path(), "page", i, "error", err)
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			out = append(out, PageText{Page: i, Text: t})
		}
	}
	if n > 0 {
		fmt.Fprintln(o.Progress)
	}
	return out, stats, nil
}

func (o *OCR) page(ctx context.Context, path string, i int) (string, error) {
	img, err := o.Renderer.RenderPage(ctx, path, i, o.Scale)
	if err != nil {
		return "", err
	}
	if img, err = raster.Fit(img, o.MaxImagePx); err != nil {
		return "", err
	}
	return o.Recognizer.RecognizeImage(ctx, img, raster.MIMEType)
}
