package main

import (
	"github.com/spf13/cobra"

	"surgelint/internal/diagfmt"
	"surgelint/internal/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every built-in rule with its defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setup, err := resolveSetup(cmd, nil)
		if err != nil {
			return err
		}
		diagfmt.Rules(cmd.OutOrStdout(), lint.Default(), setup.Color)
		return nil
	},
}
