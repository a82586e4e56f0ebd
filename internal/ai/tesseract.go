//go:build tesseract

package ai

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rotisserie/eris"
)

// TesseractHint tells the operator how to get a working local OCR engine.
const TesseractHint = "rebuild with -tags tesseract and install tesseract-ocr (apt-get install tesseract-ocr tesseract-ocr-jpn / brew install tesseract tesseract-lang)"

// Tesseract is a local Recognizer backed by gosseract.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a client for lang ("jpn+eng" style). Close it when done.
func NewTesseract(lang string) (*Tesseract, error) {
	c := gosseract.NewClient()
	if lang != "" {
		if err := c.SetLanguage(strings.Split(lang, "+")...); err != nil {
			c.Close()
			return nil, eris.Wrapf(ErrMissingDependency, "tesseract: language %q: %v", lang, err)
		}
	}
	return &Tesseract{client: c}, nil
}

func (t *Tesseract) RecognizeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := t.client.SetImageFromBytes(data); err != nil {
		return "", eris.Wrap(err, "tesseract: set image")
	}
	text, err := t.client.Text()
	if err != nil {
		return "", eris.Wrap(err, "tesseract: recognize")
	}
	return strings.TrimSpace(text), nil
}

func (t *Tesseract) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
