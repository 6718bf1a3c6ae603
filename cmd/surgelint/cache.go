package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lint result cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached lint result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setup, err := resolveSetup(cmd, nil)
		if err != nil {
			return err
		}
		if setup.Cache == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "cache is disabled, nothing to clean")
			return nil
		}
		if err := setup.Cache.DropAll(); err != nil {
			return fmt.Errorf("cache clean: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleaned")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
