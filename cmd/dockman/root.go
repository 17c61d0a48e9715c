// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for dockman.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"dockman/internal/config"
	"dockman/internal/engine"
	"dockman/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// quiet suppresses streamed engine output
	quiet bool
	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// execTimeout limits the wall-clock time of each engine invocation
	execTimeout time.Duration

	// logger announces operations on stderr; level is set by --verbose.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "dockman",
		Short: "A lifecycle manager for container images",
		Long: TitleStyle.Render("dockman") + SubtitleStyle.Render(" - A lifecycle manager for container images") + `

dockman wraps the Docker CLI with a configuration layer so that image
builds, registry pushes and pulls, and cleanup all run from one set of
settings instead of hand-assembled command lines.

Settings resolve per field from four sources, highest precedence first:
CLI flags, DOCKMAN_* environment variables, a TOML config file, and
built-in defaults.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'dockman init' to generate a config file
  2. Edit dockman.toml with your image name and registry
  3. Build and publish with: dockman build && dockman push

` + SubtitleStyle.Render("Examples:") + `
  dockman build             Build the configured image
  dockman build --push      Build and publish in one step
  dockman run -p 8080:80    Start a container from the image
  dockman push              Retag and publish to the registry
  dockman clean --all       Prune containers, images, volumes and cache`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress streamed engine output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dockman/config.toml)")
	rootCmd.PersistentFlags().DurationVar(&execTimeout, "timeout", 0, "per-invocation time limit (e.g. 5m); 0 means no limit")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(buildersCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(newConfigCommand(config.NewProvider()))
	rootCmd.AddCommand(newCompletionCommand())
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
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		renderErrorDetail(os.Stderr, err, verbose)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// renderErrorDetail prints the actionable detail fang's error line omits:
// the attached suggestions and, in verbose mode, the full error chain.
func renderErrorDetail(w io.Writer, err error, verboseMode bool) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verboseMode))
	if !verboseMode {
		fmt.Fprintln(w, WarningStyle.Render("Run again with --verbose for the full error chain."))
	}
}

// initLogging applies the --verbose flag to the shared logger.
func initLogging() {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// newEngine creates the Docker engine wired to the CLI's global flags.
func newEngine() *engine.Docker {
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithStreams(os.Stdout, os.Stderr),
	}
	if execTimeout > 0 {
		opts = append(opts, engine.WithTimeout(execTimeout))
	}
	return engine.NewDocker(opts...)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
