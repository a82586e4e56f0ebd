package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syllabushack/contenttools/internal/cli"
)

func main() {
	var g cli.Globals
	root := &cobra.Command{
		Use:   "envcheck",
		Short: "Show where the .env file is looked up and whether the API key is set",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.Setup(cmd)
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
	g.Bind(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
