// Package raster renders PDF pages to PNG images for OCR.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/image/draw"
)

// BaseDPI is the PDF user-space resolution; scale 2 renders at 144 DPI.
const BaseDPI = 72

// MIMEType is the content type of every rendered page.
const MIMEType = "image/png"

// InstallHint is shown when the renderer binary cannot be found.
const InstallHint = "install poppler-utils (apt-get install poppler-utils / brew install poppler)"

// ErrUnavailable is returned when no renderer binary is present.
var ErrUnavailable = eris.New("raster: pdftoppm not found")

// Renderer rasterizes a single page of a PDF file.
type Renderer interface {
	RenderPage(ctx context.Context, pdfPath string, page int, scale float64) ([]byte, error)
}

// Availability is the result of a capability check.
type Availability struct {
	Available bool
	Path      string
	Hint      string
}

// Pdftoppm renders pages with poppler's pdftoppm.
type Pdftoppm struct {
	Bin string
}

// NewPdftoppm returns a renderer using bin, or "pdftoppm" from PATH when empty.
func NewPdftoppm(bin string) *Pdftoppm {
	if bin == "" {
		bin = "pdftoppm"
	}
	return &Pdftoppm{Bin: bin}
}

// Check reports whether the binary can be executed.
func (p *Pdftoppm) Check() Availability {
	path, err := exec.LookPath(p.Bin)
	if err != nil {
		return Availability{Hint: InstallHint}
	}
	return Availability{Available: true, Path: path}
}

// RenderPage renders page (1-based) at BaseDPI*scale and returns PNG bytes.
func (p *Pdftoppm) RenderPage(ctx context.Context, pdfPath string, page int, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	dir, err := os.MkdirTemp("", "pdf2md-page-")
	if err != nil {
		return nil, eris.Wrap(err, "raster: temp dir")
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	n := strconv.Itoa(page)
	dpi := strconv.Itoa(int(BaseDPI*scale + 0.5))
	cmd := exec.CommandContext(ctx, p.Bin, "-f", n, "-l", n, "-r", dpi, "-png", "-singlefile", pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, eris.Wrap(ErrUnavailable, InstallHint)
		}
		return nil, eris.Wrapf(err, "raster: pdftoppm page %d: %s", page, bytes.TrimSpace(stderr.Bytes()))
	}
	b, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, eris.Wrapf(err, "raster: page %d output", page)
	}
	return b, nil
}

// Fit scales a PNG down so its longer side is at most maxPx.
// Images already within bounds, or maxPx <= 0, are returned unchanged.
func Fit(data []byte, maxPx int) ([]byte, error) {
	if maxPx <= 0 {
		return data, nil
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "raster: decode png")
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxPx {
		return data, nil
	}
	nw := max(1, w*maxPx/long)
	nh := max(1, h*maxPx/long)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, eris.Wrap(err, "raster: encode png")
	}
	return out.Bytes(), nil
}

func (a Availability) String() string {
	if a.Available {
		return fmt.Sprintf("OK (%s)", a.Path)
	}
	return "MISSING (" + a.Hint + ")"
}
