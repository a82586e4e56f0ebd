// Package extract turns PDF files into Markdown text.
//
// Each document goes through four stages: it is opened, a strategy is
// selected (native text layer or OCR of rendered pages), pages are extracted
// in order, and the joined text is written next to the input or into an
// output directory. Documents are processed one after another; a failure
// affects only its own document.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/syllabushack/contenttools/internal/ai"
	"github.com/syllabushack/contenttools/internal/pdfdoc"
)

// Options are the per-run switches.
type Options struct {
	OutputDir      string
	PageMarkers    bool
	ForceOCR       bool
	MarkdownTables bool
	Select         SelectOptions
}

// Config wires the pipeline's collaborators.
type Config struct {
	Opener  pdfdoc.Opener
	OCR     *OCR
	Options Options

	Logger *slog.Logger
	// Out receives operator-facing progress lines.
	Out io.Writer
}

func (c *Config) defaults() {
	if c.Opener == nil {
		c.Opener = pdfdoc.NewOpener(pdfdoc.EngineLedongthuc)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	if c.OCR != nil {
		if c.OCR.Logger == nil {
			c.OCR.Logger = c.Logger
		}
		if c.OCR.Progress == nil {
			c.OCR.Progress = c.Out
		}
	}
	c.Options.Select.defaults()
}

// Pipeline extracts documents with a fixed configuration.
type Pipeline struct {
	cfg Config
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{cfg: cfg}
}

// Report describes one successfully written document.
type Report struct {
	Path        string
	Output      string
	Mode        Mode
	Pages       int
	Extracted   int
	FailedPages int
}

// Process runs one document through the pipeline. Every returned error is an *Error.
func (p *Pipeline) Process(ctx context.Context, path string) (Report, error) {
	rep := Report{Path: path}
	opts := p.cfg.Options
	out := p.cfg.Out

	if _, err := os.Stat(path); err != nil {
		return rep, docError(KindInputNotFound, path, err)
	}
	rep.Output = OutputPath(path, opts.OutputDir)

	doc, err := p.cfg.Opener.Open(path)
	if err != nil {
		return rep, docError(KindOpenFailure, path, err)
	}
	defer doc.Close()

	rep.Pages = doc.NumPages()
	fmt.Fprintf(out, "PDF has %d pages.\n", rep.Pages)

	rep.Mode = Select(doc, opts.ForceOCR, opts.Select)
	switch {
	case opts.ForceOCR:
		fmt.Fprintln(out, "Force OCR mode enabled.")
	case rep.Mode == ModeNative:
		fmt.Fprintln(out, "Detected: TEXT-BASED PDF (native extraction)")
	default:
		fmt.Fprintln(out, "Detected: IMAGE-BASED PDF (OCR required)")
	}
	if p.cfg.Logger.Enabled(ctx, slog.LevelDebug) {
		p.cfg.Logger.Debug("strategy selected", "path", path, "mode", rep.Mode,
			"sample_avg", SampleAverage(doc, opts.Select.SamplePages))
	}

	var pages []PageText
	if rep.Mode == ModeOCR {
		if err := p.ocrUsable(); err != nil {
			return rep, docError(ocrKind(err), path, err)
		}
		var stats OCRStats
		pages, stats, err = p.cfg.OCR.Extract(ctx, doc)
		rep.FailedPages = stats.Failed
		if err != nil {
			return rep, docError(KindUnknown, path, err)
		}
	} else {
		pages = ExtractNative(doc, p.cfg.Logger)
	}
	rep.Extracted = len(pages)
	if len(pages) == 0 {
		return rep, docError(KindEmptyResult, path, nil)
	}

	text := Format(pages, FormatOptions{PageMarkers: opts.PageMarkers, Tables: opts.MarkdownTables})
	if err := WriteFile(rep.Output, []byte(text)); err != nil {
		return rep, docError(KindWriteFailure, path, err)
	}
	return rep, nil
}

func (p *Pipeline) ocrUsable() error {
	o := p.cfg.OCR
	switch {
	case o == nil:
		return eris.Wrap(ai.ErrMissingDependency, "OCR is not configured")
	case o.Unavailable != nil:
		return o.Unavailable
	case o.Renderer == nil || o.Recognizer == nil:
		return eris.Wrap(ai.ErrMissingDependency, "OCR is not configured")
	}
	return nil
}

func ocrKind(err error) Kind {
	if eris.Is(err, ai.ErrMissingCredential) {
		return KindMissingCredential
	}
	return KindMissingDependency
}

// Summary is the outcome of a multi-document run.
type Summary struct {
	Reports []Report
	Errors  []error
}

// Run processes paths in order. Each failure is printed to errOut as one line
// and does not stop the remaining documents.
func (p *Pipeline) Run(ctx context.Context, paths []string, errOut io.Writer) Summary {
	var sum Summary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			sum.Errors = append(sum.Errors, docError(KindUnknown, path, err))
			fmt.Fprintf(errOut, "Error: %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(p.cfg.Out, "Processing: %s\n", filepath.Base(path))
		rep, err := p.Process(ctx, path)
		if err != nil {
			sum.Errors = append(sum.Errors, err)
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		sum.Reports = append(sum.Reports, rep)
		fmt.Fprintf(p.cfg.Out, "Success! Extracted %d pages to: %s\n", rep.Extracted, rep.Output)
		if rep.FailedPages > 0 {
			fmt.Fprintf(p.cfg.Out, "  (%d pages failed OCR and were skipped)\n", rep.FailedPages)
		}
	}
	return sum
}
