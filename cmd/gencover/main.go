package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/ai"
	"github.com/syllabushack/contenttools/internal/cli"
	"github.com/syllabushack/contenttools/internal/config"
	"github.com/syllabushack/contenttools/internal/cover"
)

func main() {
	var g cli.Globals
	var model string
	root := &cobra.Command{
		Use:     "gencover <prompt> <output_path>",
		Short:   "Generate a cover image with an image model",
		Example: `  gencover "Cyberpunk neural network, neon green" content/blog/method/my-article/cover.jpg`,
		Args:    cobra.ExactArgs(2),

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.Setup(cmd)
			if err != nil {
				return err
			}
			if model == "" {
				model = cfg.Models.Cover
			}
			key, ok := config.Credential(config.GoogleAPIKeyEnv)
			if !ok {
				return eris.Wrapf(ai.ErrMissingCredential, "%s is not set or is still the placeholder; please edit %s", config.GoogleAPIKeyEnv, cfg.EnvFile)
			}
			client, err := ai.NewGemini(cmd.Context(), key, model)
			if err != nil {
				return err
			}
			logger.Debug("image model", "model", client.Model())
			gen := &cover.Generator{Images: client, Out: cmd.OutOrStdout()}
			return gen.Generate(cmd.Context(), args[0], cfg.Resolve(args[1]))
		},
	}
	g.Bind(root)
	root.Flags().StringVar(&model, "model", "", "image model (default from config: imagen-4.0-generate-001)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
