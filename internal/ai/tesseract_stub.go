//go:build !tesseract

package ai

import (
	"context"

	"github.com/rotisserie/eris"
)

// TesseractHint tells the operator how to get a working local OCR engine.
const TesseractHint = "rebuild with -tags tesseract and install tesseract-ocr (apt-get install tesseract-ocr tesseract-ocr-jpn / brew install tesseract tesseract-lang)"

// Tesseract is unavailable in builds without the tesseract tag.
type Tesseract struct{}

// NewTesseract always fails with ErrMissingDependency in this build.
func NewTesseract(lang string) (*Tesseract, error) {
	return nil, eris.Wrap(ErrMissingDependency, "tesseract support not compiled in")
}

func (t *Tesseract) RecognizeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	return "", eris.Wrap(ErrMissingDependency, "tesseract support not compiled in")
}

// Close is safe on a nil client.
func (t *Tesseract) Close() error { return nil }
