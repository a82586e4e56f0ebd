// Package cover generates article cover images.
package cover

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/syllabushack/contenttools/internal/ai"
)

const tag = "[gen_cover]"

type Generator struct {
	Images ai.ImageGenerator
	// Out receives progress lines; nil discards them.
	Out io.Writer
}

// Generate asks the model for one image and saves it at output, creating
// parent directories as needed.
func (g *Generator) Generate(ctx context.Context, prompt, output string) error {
	out := g.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "%s Prompt: %s...\n", tag, preview(prompt, 60))
	fmt.Fprintf(out, "%s Output: %s\n", tag, output)
	fmt.Fprintf(out, "%s Calling image model...\n", tag)

	img, err := g.Images.GenerateImage(ctx, prompt)
	if err != nil {
		return eris.Wrap(err, "generate image")
	}
	if len(img.Data) == 0 {
		return eris.Wrap(ai.ErrEmptyResponse, "no image data in response")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return eris.Wrapf(err, "create %s", filepath.Dir(output))
	}
	if err := os.WriteFile(output, img.Data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", output)
	}
	fmt.Fprintf(out, "%s Success! Saved to: %s\n", tag, output)
	return nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
