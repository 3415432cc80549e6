package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exam-prep-assistant/internal/workflow"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the compiled workflow graph",
	Long:  `Compiles the chat workflow offline and prints its nodes and transitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		withTools, _ := cmd.Flags().GetBool("tools")

		top, err := workflow.DescribeTopology(withTools)
		if err != nil {
			return fmt.Errorf("compile graph: %w", err)
		}
		out, err := formatTopology(top, format)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	graphCmd.Flags().Bool("tools", true, "Include the search tool branch")
	rootCmd.AddCommand(graphCmd)
}
