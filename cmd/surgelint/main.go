package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"surgelint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "surgelint",
	Short: "Linter for the Surge language",
	Long:  `surgelint finds redundant and error-prone patterns in Surge source code and can rewrite many of them automatically`,
}

func main() {
	rootCmd.Version = version.Full()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to surgelint.toml (default: search upward from the target)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to report (0=from config)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=from config, then GOMAXPROCS)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
