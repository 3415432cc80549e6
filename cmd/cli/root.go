package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "exam-prep",
	Short: "Exam prep assistant from the terminal",
	Long:  `Runs single chat turns against the study assistant and inspects its routing rules and workflow graph.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", formatText, "Output format: text, yaml or json")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and markdown rendering")
}
