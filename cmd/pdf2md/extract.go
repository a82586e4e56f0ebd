package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/ai"
	"github.com/syllabushack/contenttools/internal/cli"
	"github.com/syllabushack/contenttools/internal/config"
	"github.com/syllabushack/contenttools/internal/extract"
	"github.com/syllabushack/contenttools/internal/pdfdoc"
	"github.com/syllabushack/contenttools/internal/raster"
)

func rootCmd() *cobra.Command {
	var g cli.Globals
	var outDir string
	var pageMarkers bool
	var forceOCR bool
	var mdTables bool
	var engine string
	var ocrEngine string
	var model string
	var delay time.Duration
	var rpm int
	var maxImagePx int

	cmd := &cobra.Command{
		Use:   "pdf2md <pdf>...",
		Short: "Extract text from PDF files to Markdown, falling back to OCR for scanned PDFs",
		Args:  cobra.MinimumNArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.Setup(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("ocr-engine") {
				cfg.OCR.Engine = ocrEngine
			}
			if flags.Changed("model") {
				cfg.Models.OCR = model
			}
			if flags.Changed("delay") {
				cfg.OCR.Delay = delay
			}
			if flags.Changed("rpm") {
				cfg.OCR.RequestsPerMinute = rpm
			}
			if flags.Changed("max-image-px") {
				cfg.OCR.MaxImagePx = maxImagePx
			}
			eng, err := pdfdoc.ParseEngine(engine)
			if err != nil {
				return err
			}

			ocr, closeOCR := buildOCR(cmd.Context(), cfg, logger)
			defer closeOCR()

			out := cmd.OutOrStdout()
			printDependencies(out, cfg, eng, ocr)
			// a missing credential stays a per-document error
			if forceOCR && eris.Is(ocr.Unavailable, ai.ErrMissingDependency) {
				return eris.Wrap(ocr.Unavailable, "--force-ocr requested but OCR is unavailable")
			}

			p := extract.New(extract.Config{
				Opener: pdfdoc.NewOpener(eng),
				OCR:    ocr,
				Options: extract.Options{
					OutputDir:      outDir,
					PageMarkers:    pageMarkers,
					ForceOCR:       forceOCR,
					MarkdownTables: mdTables,
					Select: extract.SelectOptions{
						SamplePages:     cfg.OCR.SamplePages,
						MinCharsPerPage: cfg.OCR.MinCharsPerPage,
					},
				},
				Logger: logger,
				Out:    out,
			})
			sum := p.Run(cmd.Context(), args, cmd.ErrOrStderr())
			logger.Debug("run finished", "written", len(sum.Reports), "failed", len(sum.Errors))
			return nil
		},
	}
	g.Bind(cmd)
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "directory to save output files (default: next to each PDF)")
	cmd.Flags().BoolVarP(&pageMarkers, "page-markers", "p", false, "add '## Page N' headers")
	cmd.Flags().BoolVar(&forceOCR, "force-ocr", false, "always use OCR even for text PDFs")
	cmd.Flags().BoolVar(&mdTables, "md-tables", false, "rewrite space-aligned columns as Markdown tables")
	cmd.Flags().StringVar(&engine, "engine", "ledongthuc", "native text engine: ledongthuc|rsc")
	cmd.Flags().StringVar(&ocrEngine, "ocr-engine", "gemini", "OCR engine: gemini|tesseract")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model used for OCR (default from config)")
	cmd.Flags().DurationVar(&delay, "delay", extract.DefaultDelay, "pause between OCR requests")
	cmd.Flags().IntVar(&rpm, "rpm", 0, "cap OCR requests per minute instead of a fixed delay")
	cmd.Flags().IntVar(&maxImagePx, "max-image-px", 0, "downscale page images so the longer side fits (0 = off)")
	return cmd
}

// buildOCR assembles the OCR path once for the whole run. Problems are
// recorded in Unavailable so only documents that need OCR are refused.
func buildOCR(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*extract.OCR, func()) {
	var throttle extract.Throttle = extract.FixedDelay(cfg.OCR.Delay)
	if cfg.OCR.RequestsPerMinute > 0 {
		throttle = extract.NewLimiter(cfg.OCR.RequestsPerMinute)
	}
	ocr := &extract.OCR{
		Throttle:   throttle,
		Scale:      cfg.OCR.Scale,
		MaxImagePx: cfg.OCR.MaxImagePx,
		Logger:     logger,
	}
	closer := func() {}

	switch strings.ToLower(cfg.OCR.Engine) {
	case "", "gemini":
		key, ok := config.Credential(config.GoogleAPIKeyEnv)
		if !ok {
			ocr.Unavailable = eris.Wrapf(ai.ErrMissingCredential, "%s not set for OCR; please set it in %s", config.GoogleAPIKeyEnv, cfg.EnvFile)
			break
		}
		g, err := ai.NewGemini(ctx, key, cfg.Models.OCR)
		if err != nil {
			ocr.Unavailable = err
			break
		}
		ocr.Recognizer = g
	case "tesseract":
		t, err := ai.NewTesseract(cfg.OCR.Language)
		if err != nil {
			ocr.Unavailable = eris.Wrap(err, ai.TesseractHint)
			break
		}
		ocr.Recognizer = t
		closer = func() { t.Close() }
	default:
		ocr.Unavailable = eris.Wrapf(ai.ErrMissingDependency, "unknown OCR engine %q", cfg.OCR.Engine)
	}

	r := raster.NewPdftoppm(cfg.OCR.Pdftoppm)
	ocr.Renderer = r
	if a := r.Check(); !a.Available && ocr.Unavailable == nil {
		ocr.Unavailable = eris.Wrap(ai.ErrMissingDependency, raster.InstallHint)
	}
	return ocr, closer
}

func printDependencies(w io.Writer, cfg *config.Config, eng pdfdoc.Engine, ocr *extract.OCR) {
	_, keyOK := config.Credential(config.GoogleAPIKeyEnv)
	renderer := "MISSING (for OCR)"
	if r, ok := ocr.Renderer.(*raster.Pdftoppm); ok {
		if a := r.Check(); a.Available {
			renderer = a.String()
		} else {
			renderer = "MISSING (for OCR: " + a.Hint + ")"
		}
	}
	ocrStatus := "OK"
	if ocr.Recognizer == nil {
		ocrStatus = "MISSING (for OCR)"
	}
	fmt.Fprintln(w, "Dependencies:")
	fmt.Fprintf(w, "  - PDF text engine: %s\n", eng)
	fmt.Fprintf(w, "  - pdftoppm: %s\n", renderer)
	fmt.Fprintf(w, "  - OCR engine (%s): %s\n", cfg.OCR.Engine, ocrStatus)
	if strings.EqualFold(cfg.OCR.Engine, "gemini") || cfg.OCR.Engine == "" {
		fmt.Fprintf(w, "  - %s: %s\n", config.GoogleAPIKeyEnv, cli.Status(keyOK, "for OCR"))
	}
	fmt.Fprintln(w)
}
