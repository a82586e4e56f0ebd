package ai

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	genai "google.golang.org/genai"
)

// Gemini implements Recognizer, Generator and ImageGenerator on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// Option customizes the Gemini client.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = u }
}

func NewGemini(ctx context.Context, apiKey, model string, opts ...Option) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	for _, o := range opts {
		o(cfg)
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: new client")
	}
	return &Gemini{client: c, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, eris.Wrapf(err, "gemini: %s", g.model)
	}
	return res, nil
}

// Generate sends a single text prompt and returns the answer with code fences removed.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.generate(ctx, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", err
	}
	out := stripCodeFences(res.Text())
	if out == "" {
		return "", eris.Wrapf(ErrEmptyResponse, "gemini: %s", g.model)
	}
	return out, nil
}

// RecognizeImage sends the image inline together with OCRInstruction.
func (g *Gemini) RecognizeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	prompt := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: OCRInstruction},
		},
	}
	res, err := g.generate(ctx, []*genai.Content{prompt}, nil)
	if err != nil {
		return "", err
	}
	return stripCodeFences(res.Text()), nil
}

// GenerateImage uses the Imagen predict endpoint for imagen-* models and
// generateContent with image output for Gemini image models.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	if strings.HasPrefix(g.model, "imagen") {
		res, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{NumberOfImages: 1})
		if err != nil {
			return Image{}, eris.Wrapf(err, "imagen: %s", g.model)
		}
		for _, gi := range res.GeneratedImages {
			if gi != nil && gi.Image != nil && len(gi.Image.ImageBytes) > 0 {
				return Image{Data: gi.Image.ImageBytes, MIMEType: gi.Image.MIMEType}, nil
			}
		}
		return Image{}, eris.Wrapf(ErrEmptyResponse, "imagen: %s: no image data", g.model)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr[float32](1.0),
		TopP:               genai.Ptr[float32](0.95),
		TopK:               genai.Ptr[float32](40),
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	res, err := g.generate(ctx, []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, cfg)
	if err != nil {
		return Image{}, err
	}
	for _, c := range res.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return Image{Data: p.InlineData.Data, MIMEType: p.InlineData.MIMEType}, nil
			}
		}
	}
	return Image{}, eris.Wrapf(ErrEmptyResponse, "gemini: %s: no image data", g.model)
}

// stripCodeFences removes a leading ```lang line and a trailing ``` fence.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		} else {
			s = ""
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
