package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/syllabushack/contenttools/internal/pdfdoc"
)

// Mode is the extraction strategy for a whole document.
type Mode int

const (
	ModeNative Mode = iota
	ModeOCR
)

func (m Mode) String() string {
	if m == ModeOCR {
		return "ocr"
	}
	return "native"
}

// SelectOptions tunes the text-layer heuristic.
type SelectOptions struct {
	// SamplePages is how many leading pages are inspected (default 3).
	SamplePages int
	// MinCharsPerPage is the average trimmed character count that still counts as a text PDF (default 50).
	MinCharsPerPage int
}

func (o *SelectOptions) defaults() {
	if o.SamplePages <= 0 {
		o.SamplePages = 3
	}
	if o.MinCharsPerPage <= 0 {
		o.MinCharsPerPage = 50
	}
}

// Select decides once per document between native extraction and OCR.
// Pages whose text cannot be read count as empty.
func Select(doc pdfdoc.Document, forceOCR bool, opts SelectOptions) Mode {
	if forceOCR {
		return ModeOCR
	}
	opts.defaults()
	if SampleAverage(doc, opts.SamplePages) >= float64(opts.MinCharsPerPage) {
		return ModeNative
	}
	return ModeOCR
}

// SampleAverage returns the mean trimmed character count over the first
// min(n, page count) pages. A document without pages averages 0.
func SampleAverage(doc pdfdoc.Document, n int) float64 {
	sampled := min(n, doc.NumPages())
	if sampled <= 0 {
		return 0
	}
	total := 0
	for i := 1; i <= sampled; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		total += utf8.RuneCountInString(strings.TrimSpace(text))
	}
	return float64(total) / float64(sampled)
}
