// Package ai holds the clients for the generative-language services used by
// the tools. Every client is an explicit value built once per process and
// passed to its call sites; there is no package-level API configuration.
package ai

import (
	"context"

	"github.com/rotisserie/eris"
)

var (
	// ErrMissingCredential is returned when a client is built without an API key.
	ErrMissingCredential = eris.New("missing API key")
	// ErrMissingDependency is returned when an optional engine is not compiled in or not installed.
	ErrMissingDependency = eris.New("missing dependency")
	// ErrEmptyResponse is returned when the service answered without usable content.
	ErrEmptyResponse = eris.New("empty response")
)

// OCRInstruction is sent with every page image. It asks for a verbatim
// plain-text transcription with layout ignored.
const OCRInstruction = "この画像に含まれるすべてのテキストを正確に抽出してください。レイアウトは無視して、テキストのみをプレーンテキストで出力してください。"

// Recognizer turns an image into text.
type Recognizer interface {
	RecognizeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Generator answers a text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Image is a generated image payload.
type Image struct {
	Data     []byte
	MIMEType string
}

// ImageGenerator produces one image for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
}
