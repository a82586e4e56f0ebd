// Package cli holds the flag plumbing shared by every command.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/config"
	"github.com/syllabushack/contenttools/internal/logging"
)

// Globals are the persistent flags every binary accepts.
type Globals struct {
	EnvFile    string
	ConfigFile string
	Verbose    bool
}

// Bind registers the persistent flags on root.
func (g *Globals) Bind(root *cobra.Command) {
	root.PersistentFlags().StringVar(&g.EnvFile, "env-file", "", "path to the .env file (default: nearest .env above the working directory)")
	root.PersistentFlags().StringVar(&g.ConfigFile, "config", "", "YAML settings file (default: <project root>/"+config.FileName+")")
	root.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "debug logging")
}

// Setup loads the configuration and builds the logger for cmd.
func (g *Globals) Setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	logger := logging.New(cmd.ErrOrStderr(), g.Verbose)
	cfg, err := config.Load(config.Options{EnvFile: g.EnvFile, ConfigFile: g.ConfigFile})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded", "root", cfg.Root, "env_file", cfg.EnvFile, "env_loaded", cfg.EnvLoaded, "config_file", cfg.File)
	return cfg, logger, nil
}

// Status renders a credential presence flag the way the dependency reports print it.
func Status(ok bool, missing string) string {
	if ok {
		return "OK"
	}
	return "MISSING (" + missing + ")"
}
