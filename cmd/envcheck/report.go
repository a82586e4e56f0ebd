package main

import (
	"fmt"
	"io"
	"os"

	"github.com/syllabushack/contenttools/internal/config"
)

func report(w io.Writer, cfg *config.Config) {
	_, statErr := os.Stat(cfg.EnvFile)
	fmt.Fprintf(w, "Project root: %s\n", cfg.Root)
	fmt.Fprintf(w, "Env path: %s\n", cfg.EnvFile)
	fmt.Fprintf(w, "Env exists: %t\n", statErr == nil)
	fmt.Fprintf(w, "Env loaded: %t\n", cfg.EnvLoaded)
	if cfg.File != "" {
		fmt.Fprintf(w, "Config file: %s\n", cfg.File)
	}
	for _, name := range []string{config.GoogleAPIKeyEnv, config.GeminiAPIKeyEnv} {
		fmt.Fprintf(w, "%s (first 10 chars): %s\n", name, keyPreview(os.Getenv(name)))
	}
}

func keyPreview(v string) string {
	switch {
	case v == "":
		return "NOT FOUND"
	case !config.Usable(v):
		return "PLACEHOLDER"
	}
	r := []rune(v)
	if len(r) > 10 {
		r = r[:10]
	}
	return string(r) + "..."
}
