package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"surgelint/internal/driver"
	"surgelint/internal/project"
)

// runSetup is everything a lint-running subcommand needs: the
// effective configuration, the directory paths are shown relative to,
// and an optional disk cache.
type runSetup struct {
	Config  project.Config
	BaseDir string
	Cache   *driver.DiskCache
	Color   bool
	Quiet   bool
}

// resolveSetup loads the configuration for targets and folds the
// persistent flags on top of it. The config file is taken from
// --config when set, otherwise discovered by walking up from the first
// target.
func resolveSetup(cmd *cobra.Command, targets []string) (*runSetup, error) {
	flags := cmd.Root().PersistentFlags()

	startDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if len(targets) > 0 {
		abs, err := filepath.Abs(targets[0])
		if err != nil {
			return nil, err
		}
		if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		if _, err := os.Stat(abs); err == nil {
			startDir = abs
		}
	}

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	baseDir := startDir
	if configPath == "" {
		found, ok, err := project.FindConfigFile(startDir)
		if err != nil {
			return nil, err
		}
		if ok {
			configPath = found
		}
	}

	cfg := project.DefaultConfig()
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Dir(configPath)
	}

	if maxDiagnostics, err := flags.GetInt("max-diagnostics"); err != nil {
		return nil, err
	} else if maxDiagnostics > 0 {
		cfg.Lint.MaxDiagnostics = maxDiagnostics
	}
	if jobs, err := flags.GetInt("jobs"); err != nil {
		return nil, err
	} else if jobs > 0 {
		cfg.Lint.Jobs = jobs
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	if colorMode == "auto" {
		colorMode = cfg.Output.Color
	}
	var colorize bool
	switch colorMode {
	case "always":
		colorize = true
	case "never":
		colorize = false
	case "auto", "":
		colorize = isTerminal(os.Stdout)
	default:
		return nil, fmt.Errorf("invalid --color value %q (must be auto, always or never)", colorMode)
	}
	// fatih/color consults this global for its own NO_COLOR handling.
	color.NoColor = !colorize

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}

	setup := &runSetup{
		Config:  cfg,
		BaseDir: baseDir,
		Color:   colorize,
		Quiet:   quiet,
	}
	if cfg.Lint.Cache {
		cacheDir := cfg.Lint.CacheDir
		if !filepath.IsAbs(cacheDir) {
			cacheDir = filepath.Join(baseDir, cacheDir)
		}
		cache, err := driver.OpenDiskCache(cacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open lint cache: %w", err)
		}
		setup.Cache = cache
	}
	return setup, nil
}
