package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eykd/chapterlint/internal/chapter"
)

// ScaffoldRunner defines the interface for creating missing scenario skeletons.
type ScaffoldRunner interface {
	Scaffold(ctx context.Context, root, id string, apply bool) (*chapter.ScaffoldResult, error)
}

// scaffoldFileJSON is one planned file in JSON output.
type scaffoldFileJSON struct {
	Scenario string `json:"scenario"`
	Path     string `json:"path"`
}

// scaffoldJSON is the JSON output structure for the scaffold command.
type scaffoldJSON struct {
	Chapter string             `json:"chapter"`
	Applied bool               `json:"applied"`
	Files   []scaffoldFileJSON `json:"files"`
}

// NewScaffoldCmd creates the scaffold command with the given runner.
func NewScaffoldCmd(runner ScaffoldRunner, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scaffold [chapter]",
		Short: "Create skeletons for scenarios missing from a chapter",
		Long: "scaffold creates README.md, implementation/ and tests/ for every scenario the chapter config\n" +
			"references but which does not exist yet. Without --apply it only prints what it would create.",
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
			apply := v.GetBool("apply")

			result, err := runner.Scaffold(cmd.Context(), root, id, apply)
			if err != nil {
				return &ContextError{Op: "scaffold", Path: id, Err: err}
			}

			if v.GetBool("json") {
				out := scaffoldJSON{Chapter: id, Applied: result.Applied, Files: make([]scaffoldFileJSON, len(result.Files))}
				for i, f := range result.Files {
					out.Files[i] = scaffoldFileJSON{Scenario: f.Scenario, Path: f.Path}
				}
				writeJSON(cmd.OutOrStdout(), out)
				return nil
			}

			w := cmd.OutOrStdout()
			if len(result.Files) == 0 {
				fmt.Fprintln(w, "Nothing to scaffold")
				return nil
			}
			verb := "would create"
			if result.Applied {
				verb = "created"
			}
			for _, f := range result.Files {
				fmt.Fprintf(w, "%s %s\n", verb, f.Path)
			}
			if !result.Applied {
				fmt.Fprintln(w, "Dry run: rerun with --apply to write these files")
			}
			return nil
		},
	}

	addTargetFlags(cmd)
	cmd.Flags().Bool("apply", false, "Write the planned files")
	cmd.Flags().Bool("json", false, "Output results as JSON")

	return cmd
}
