package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surgelint/internal/diagfmt"
	"surgelint/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.sg|directory>...",
	Short: "Lint Surge source files",
	Long:  `Run every enabled rule over the given files or directories and report the findings. The process exits non-zero when any finding has error severity.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json), overrides the config")
	checkCmd.Flags().Bool("no-cache", false, "disable the lint result cache for this run")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	setup, err := resolveSetup(cmd, args)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format == "" {
		format = setup.Config.Output.Format
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("invalid --format value %q (must be pretty or json)", format)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	if noCache {
		setup.Cache = nil
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	result, err := driver.LintTargets(cmd.Context(), args, driver.Options{
		Config:  setup.Config,
		Cache:   setup.Cache,
		BaseDir: setup.BaseDir,
	})
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		})
		if err != nil {
			return fmt.Errorf("check: encode: %w", err)
		}
	default:
		prettyOpts := diagfmt.PrettyOpts{
			Color:     setup.Color,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		}
		diagfmt.Pretty(out, result.Bag, result.FileSet, prettyOpts)
		if !setup.Quiet {
			diagfmt.WriteSummary(out, result.Bag, prettyOpts)
			if setup.Cache != nil && result.CacheHits > 0 {
				fmt.Fprintf(out, "%d of %d file(s) served from cache\n", result.CacheHits, len(result.Files))
			}
		}
	}

	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
