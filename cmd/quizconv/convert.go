package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/cli"
	"github.com/syllabushack/contenttools/internal/quiz"
)

func convertCmd(g *cli.Globals) *cobra.Command {
	var input string
	var outDir string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the master workbook into one JSON file per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.Setup(cmd)
			if err != nil {
				return err
			}
			if input == "" {
				input = cfg.Resolve(cfg.Quiz.Input)
			}
			if outDir == "" {
				outDir = cfg.Resolve(cfg.Quiz.OutputDir)
			}
			c := &quiz.Converter{OutputDir: outDir, Logger: logger, Out: cmd.OutOrStdout()}
			res, err := c.Convert(input)
			if err != nil {
				return err
			}
			if len(res.Warnings) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) need attention, see warnings above\n", len(res.Warnings))
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d of %d categories failed", len(res.Failed), len(res.Failed)+len(res.Written))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "master workbook (default from config: tools/master_data.xlsx)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config: static/data)")
	return cmd
}
