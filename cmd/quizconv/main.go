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
		Use:           "quizconv",
		Short:         "Maintain the quiz question bank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.Bind(root)
	root.AddCommand(convertCmd(&g))
	root.AddCommand(initCmd(&g))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
