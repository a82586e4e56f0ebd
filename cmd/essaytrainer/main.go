package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/ai"
	"github.com/syllabushack/contenttools/internal/cli"
	"github.com/syllabushack/contenttools/internal/config"
	"github.com/syllabushack/contenttools/internal/trainer"
)

func main() {
	var g cli.Globals
	var model string
	var syllabus string
	root := &cobra.Command{
		Use:   "essaytrainer",
		Short: "Practice essay questions and get them graded by Gemini",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.Setup(cmd)
			if err != nil {
				return err
			}
			in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()
			if model == "" {
				model = cfg.Models.Trainer
			}
			if syllabus == "" {
				syllabus = cfg.Resolve(cfg.Trainer.SyllabusFile)
			}

			trainer.Banner(out)
			key, ok := config.Credential(config.GeminiAPIKeyEnv, config.GoogleAPIKeyEnv)
			if !ok {
				if key, err = trainer.PromptKey(in, out); err != nil {
					return err
				}
			}
			if !config.Usable(key) {
				trainer.Fail(out, "Error: API Key is required to proceed.")
				return nil
			}
			client, err := ai.NewGemini(cmd.Context(), key, model)
			if err != nil {
				trainer.Fail(out, fmt.Sprintf("Error configuring API: %v", err))
				return nil
			}

			questions, err := trainer.LoadSyllabus(syllabus)
			if err != nil {
				trainer.Fail(out, fmt.Sprintf("Error loading syllabus data: %v", err))
			}
			logger.Debug("trainer ready", "model", client.Model(), "syllabus", syllabus, "categories", len(questions))

			return trainer.New(trainer.Config{
				Model:    client,
				Syllabus: questions,
				In:       in,
				Out:      out,
				Logger:   logger,
			}).Run(cmd.Context())
		},
	}
	g.Bind(root)
	root.Flags().StringVar(&model, "model", "", "Gemini model (default from config: gemini-2.0-flash)")
	root.Flags().StringVar(&syllabus, "syllabus", "", "local question file (default from config: syllabus_data.json)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
