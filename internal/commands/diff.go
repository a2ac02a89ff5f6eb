package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/simonhull/sequel/internal/kit/generator"
	"github.com/simonhull/sequel/internal/kit/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrEntrypointChanged is returned by 'diff --exit-code' when main.py is stale.
var ErrEntrypointChanged = errors.New("generated entry point is out of date")

// DiffCmd creates and returns the 'diff' command
func DiffCmd() *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show how a rebuild would change main.py",
		Long: `Render main.py for the current sources and compare it with the one in the
output tree. Long diffs open in a scrollable viewer on a terminal
(q or esc to quit).

Examples:
  sequel diff
  sequel diff --exit-code   # fail when a rebuild is needed (CI)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, err := projectFs(current)
			if err != nil {
				return err
			}
			builder, err := newBuilder(current, current.BuildOptions())
			if err != nil {
				return err
			}

			fresh, err := builder.Preview(cmd.Context())
			if err != nil {
				return err
			}

			path := builder.EntrypointPath()
			existing, err := afero.ReadFile(fsys, path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				output.Warn(fmt.Sprintf("%s does not exist yet, run 'sequel build'", path))
				existing = []byte{}
			}

			diff := generator.Diff(path, path, existing, fresh, nil)
			if diff == "" {
				output.Success(fmt.Sprintf("%s is up to date", path))
				return nil
			}

			if err := generator.ShowDiff(cmd.OutOrStdout(), path, diff); err != nil {
				return err
			}
			if exitCode {
				return ErrEntrypointChanged
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with an error when main.py differs")

	return cmd
}
