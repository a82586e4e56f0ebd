package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Options{WorkDir: dir, EnvFile: ""})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OCR.Delay != 500*time.Millisecond {
		t.Errorf("delay = %v, want 500ms", cfg.OCR.Delay)
	}
	if cfg.OCR.SamplePages != 3 || cfg.OCR.MinCharsPerPage != 50 {
		t.Errorf("sampling = %d/%d, want 3/50", cfg.OCR.SamplePages, cfg.OCR.MinCharsPerPage)
	}
	if cfg.File != "" {
		t.Errorf("unexpected config file %q", cfg.File)
	}
}

func TestLoadFindsEnvInParent(t *testing.T) {
	t.Setenv(GoogleAPIKeyEnv, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".env"), "GOOGLE_API_KEY=abc123\n")
	sub := filepath.Join(root, "content", "blog")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{WorkDir: sub})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.EnvLoaded {
		t.Fatal("expected .env to be loaded")
	}
	if cfg.Root != root {
		t.Errorf("root = %q, want %q", cfg.Root, root)
	}
	key, ok := Credential(GoogleAPIKeyEnv)
	if !ok || key != "abc123" {
		t.Errorf("credential = %q, %v", key, ok)
	}
	if got := cfg.Resolve("content/cover.jpg"); got != filepath.Join(root, "content", "cover.jpg") {
		t.Errorf("Resolve = %q", got)
	}
}

func TestLoadExplicitEnvMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(Options{WorkDir: dir, EnvFile: filepath.Join(dir, "nope.env")}); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
models:
  ocr: gemini-2.5-flash
ocr:
  delay: 1500ms
  sample_pages: 5
quiz:
  output_dir: public/data
`)
	cfg, err := Load(Options{WorkDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Models.OCR != "gemini-2.5-flash" {
		t.Errorf("ocr model = %q", cfg.Models.OCR)
	}
	if cfg.OCR.Delay != 1500*time.Millisecond {
		t.Errorf("delay = %v", cfg.OCR.Delay)
	}
	if cfg.OCR.SamplePages != 5 {
		t.Errorf("sample pages = %d", cfg.OCR.SamplePages)
	}
	// untouched keys keep their defaults
	if cfg.OCR.MinCharsPerPage != 50 {
		t.Errorf("min chars = %d", cfg.OCR.MinCharsPerPage)
	}
	if cfg.Quiz.OutputDir != "public/data" {
		t.Errorf("output dir = %q", cfg.Quiz.OutputDir)
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "ocr: [unterminated")
	if _, err := Load(Options{WorkDir: dir, ConfigFile: filepath.Join(dir, "bad.yaml")}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCredentialSkipsPlaceholder(t *testing.T) {
	t.Setenv(GeminiAPIKeyEnv, Placeholder)
	t.Setenv(GoogleAPIKeyEnv, "  real-key  ")

	key, ok := Credential(GeminiAPIKeyEnv, GoogleAPIKeyEnv)
	if !ok || key != "real-key" {
		t.Fatalf("credential = %q, %v", key, ok)
	}

	t.Setenv(GoogleAPIKeyEnv, "")
	if _, ok := Credential(GeminiAPIKeyEnv, GoogleAPIKeyEnv); ok {
		t.Fatal("placeholder and blank must count as absent")
	}
}
