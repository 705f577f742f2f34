// Package cmd contains the CLI commands for the chapterlint application.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = NewRootCmd()
}

// app carries the state shared by every command in one command tree.
type app struct {
	settings *viper.Viper
	level    *slog.LevelVar
	root     *cobra.Command
	cfgFile  string
	verbose  bool
}

func newApp() *app {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	return &app{settings: viper.New(), level: level}
}

// Write sends log output to the root command's stderr, which tests and
// RunCLI may replace after the tree is built.
func (a *app) Write(p []byte) (int, error) {
	var w io.Writer = os.Stderr
	if a.root != nil {
		w = a.root.ErrOrStderr()
	}
	return w.Write(p)
}

func (a *app) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(a, &slog.HandlerOptions{Level: a.level}))
}

// NewRootCmd creates a new root command instance wired to the real filesystem.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := newApp()
	validator, scaffolder := wireServices(a.logger())
	return buildCommandTree(a, validator, scaffolder)
}

// buildCommandTree assembles the root command and its subcommands around
// the given runners.
func buildCommandTree(a *app, validator ValidateRunner, scaffolder ScaffoldRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapterlint",
		Short: "Validate the structure of documentation chapters",
		Long: "chapterlint checks that a chapter's .chapter/config.yaml is well formed and that every\n" +
			"scenario it references has a README.md with frontmatter, an implementation/ and a tests/ directory.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.verbose {
				a.level.Set(slog.LevelDebug)
			}
			return loadSettings(a.settings, a.cfgFile, a.logger())
		},
	}
	a.root = cmd

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Tool config file (default .chapterlint.yaml, or $CHAPTERLINT_CONFIG)")

	cmd.AddCommand(NewValidateCmd(validator, a.settings))
	cmd.AddCommand(NewScaffoldCmd(scaffolder, a.settings))

	return cmd
}

// Execute runs the root command and returns any error.
// Deprecated: Use ExecuteContext instead for proper signal handling.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Main runs the CLI against the process streams and returns the exit code.
func Main(ctx context.Context, args []string) int {
	return RunCLI(ctx, rootCmd, args, os.Stdout, os.Stderr)
}
