package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exam-prep-assistant/internal/router"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the intent routing rules in precedence order",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, err := formatRules(router.Rules(), format)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
