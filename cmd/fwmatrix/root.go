// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for fwmatrix.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fwmatrix-cli/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded tool configuration, available to all commands.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "fwmatrix",
		Short: "Per-board capability matrix for a firmware tree",
		Long: TitleStyle.Render("fwmatrix") + SubtitleStyle.Render(" - per-board capability matrix") + `

fwmatrix scans a firmware source tree and reports, for every supported
board, which optional modules are compiled in, which frozen libraries are
bundled, and which output file formats are produced.

Board settings come from the port Makefile in print-variable mode, or from
per-board TOML documents on ports that declare their configuration
directly. Results for a board are replicated under its declared aliases.

` + SubtitleStyle.Render("Examples:") + `
  fwmatrix matrix --root ~/src/firmware      Emit the JSON matrix
  fwmatrix matrix --ports --chips            Include port and chip fields
  fwmatrix boards                            List known boards and aliases`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fwmatrix/config.toml)")
	rootCmd.PersistentFlags().String("root", "", "firmware tree root (default is the working directory)")

	// Add subcommands
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(boardsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if verbose || cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if root, err := rootCmd.PersistentFlags().GetString("root"); err == nil && root != "" {
		cfg.Root = root
	}
}
