package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/syllabushack/contenttools/internal/ai"
	"github.com/syllabushack/contenttools/internal/config"
	"github.com/syllabushack/contenttools/internal/extract"
	"github.com/syllabushack/contenttools/internal/logging"
	"github.com/syllabushack/contenttools/internal/pdfdoc"
)

func TestBuildOCRUnavailable(t *testing.T) {
	t.Setenv(config.GoogleAPIKeyEnv, "")
	tests := []struct {
		engine string
		want   error
	}{
		{"gemini", ai.ErrMissingCredential},
		{"ocrmypdf", ai.ErrMissingDependency},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			cfg := config.Default()
			cfg.OCR.Engine = tt.engine
			ocr, closeOCR := buildOCR(context.Background(), &cfg, logging.Discard())
			defer closeOCR()
			if !errors.Is(ocr.Unavailable, tt.want) {
				t.Errorf("Unavailable = %v, want %v", ocr.Unavailable, tt.want)
			}
			if ocr.Recognizer != nil {
				t.Error("no recognizer expected")
			}
		})
	}
}

func TestBuildOCRThrottle(t *testing.T) {
	t.Setenv(config.GoogleAPIKeyEnv, "")
	cfg := config.Default()
	ocr, _ := buildOCR(context.Background(), &cfg, logging.Discard())
	if _, ok := ocr.Throttle.(extract.FixedDelay); !ok {
		t.Errorf("default throttle = %T, want FixedDelay", ocr.Throttle)
	}
	cfg.OCR.RequestsPerMinute = 30
	ocr, _ = buildOCR(context.Background(), &cfg, logging.Discard())
	if _, ok := ocr.Throttle.(*extract.Limiter); !ok {
		t.Errorf("rpm throttle = %T, want *Limiter", ocr.Throttle)
	}
}

func TestPrintDependencies(t *testing.T) {
	t.Setenv(config.GoogleAPIKeyEnv, "")
	cfg := config.Default()
	ocr, _ := buildOCR(context.Background(), &cfg, logging.Discard())
	var out strings.Builder
	printDependencies(&out, &cfg, pdfdoc.EngineRSC, ocr)
	for _, want := range []string{
		"Dependencies:",
		"PDF text engine: rsc",
		"OCR engine (gemini): MISSING (for OCR)",
		"GOOGLE_API_KEY: MISSING (for OCR)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report missing %q:\n%s", want, out.String())
		}
	}
}

// writePDF writes a one-page PDF with a single line of text.
func writePDF(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	var offsets []int
	content := "BT /F1 12 Tf 72 720 Td (scanned) Tj ET"
	for _, body := range []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	} {
		if len(offsets) == 0 {
			buf.WriteString("%PDF-1.4\n")
		}
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestForceOCRWithoutCredentialIsPerDocument(t *testing.T) {
	t.Setenv(config.GoogleAPIKeyEnv, "")
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("GOOGLE_API_KEY=YOUR_API_KEY_HERE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, b := filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")
	writePDF(t, a)
	writePDF(t, b)

	cmd := rootCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--env-file", env, "--force-ocr", a, b})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("a missing credential must not fail the run: %v", err)
	}
	got := out.String()
	if n := strings.Count(got, "Processing:"); n != 2 {
		t.Errorf("processed %d documents, want 2:\n%s", n, got)
	}
	if n := strings.Count(got, "Error: "); n != 2 {
		t.Errorf("error lines = %d, want one per input:\n%s", n, got)
	}
	if !strings.Contains(got, "missing credential") {
		t.Errorf("errors should name the credential:\n%s", got)
	}
	if strings.Contains(got, "Usage:") {
		t.Errorf("usage must not be printed:\n%s", got)
	}
}

func TestForceOCRWithoutEngineFailsUpFront(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	a := filepath.Join(dir, "a.pdf")
	writePDF(t, a)

	cmd := rootCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--env-file", env, "--force-ocr", "--ocr-engine", "ocrmypdf", a})
	err := cmd.ExecuteContext(context.Background())
	if !errors.Is(err, ai.ErrMissingDependency) {
		t.Fatalf("err = %v, want missing dependency", err)
	}
	if strings.Contains(out.String(), "Processing:") {
		t.Error("no document should be processed")
	}
	if strings.Contains(out.String(), "Usage:") {
		t.Errorf("usage must not be printed:\n%s", out.String())
	}
}

func TestPerFileErrorsExitZero(t *testing.T) {
	t.Setenv(config.GoogleAPIKeyEnv, "")
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := rootCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--env-file", env, filepath.Join(dir, "missing.pdf")})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("per-file failures must not fail the run: %v", err)
	}
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected an error line:\n%s", out.String())
	}
}
