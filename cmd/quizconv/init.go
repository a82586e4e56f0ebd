package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/cli"
	"github.com/syllabushack/contenttools/internal/quiz"
)

func initCmd(g *cli.Globals) *cobra.Command {
	var output string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty master workbook with the expected columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.Setup(cmd)
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Resolve(cfg.Quiz.Input)
			}
			if err := quiz.WriteTemplate(output, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "workbook path (default from config: tools/master_data.xlsx)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing workbook")
	return cmd
}
