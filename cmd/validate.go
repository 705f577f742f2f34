package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eykd/chapterlint/internal/domain"
)

// ValidateRunner defines the interface for validating one chapter.
type ValidateRunner interface {
	Validate(ctx context.Context, root, id string) (*domain.Result, error)
}

// NewValidateCmd creates the validate command with the given runner.
func NewValidateCmd(runner ValidateRunner, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [chapter]",
		Short: "Check a chapter's config and scenario directories",
		Long: "validate loads topics/<chapter>/.chapter/config.yaml and checks every scenario it references.\n" +
			"Passes and warnings go to stdout, errors to stderr. The exit code is 1 when any error was found.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			id, root, err := chapterTarget(v, args)
			if err != nil {
				return err
			}

			result, err := runner.Validate(cmd.Context(), root, id)
			if err != nil {
				return &ContextError{Op: "validate", Path: id, Err: err}
			}

			if v.GetBool("json") {
				writeJSON(cmd.OutOrStdout(), newValidateJSON(id, root, result))
			} else {
				r := newReportRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), v.GetBool("no-color"))
				r.Render(result)
			}

			if !result.IsValid() {
				return &ValidationFailedError{Errors: len(result.Errors), Warnings: len(result.Warnings)}
			}
			return nil
		},
	}

	addTargetFlags(cmd)
	cmd.Flags().Bool("json", false, "Output results as JSON")
	cmd.Flags().Bool("no-color", false, "Disable coloured report tags")

	return cmd
}

// addTargetFlags registers the flags that select a chapter.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("chapter", "", "Chapter ID (e.g. agent/mcp-deep-dive)")
	cmd.Flags().String("repo-root", "", "Repository root path (default: current directory)")
}

// chapterTarget resolves the chapter id and repository root. A positional
// argument takes precedence over --chapter.
func chapterTarget(v *viper.Viper, args []string) (string, string, error) {
	id := v.GetString("chapter")
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		return "", "", ErrChapterRequired
	}

	root := v.GetString("repo-root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("getting working directory: %w", err)
		}
		root = wd
	}
	return id, root, nil
}
