package commands

import (
	"fmt"

	"github.com/simonhull/sequel/internal/kit/output"
	"github.com/spf13/cobra"
)

// BuildCmd creates and returns the 'build' command
func BuildCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild the output tree and generate main.py",
		Long: `Rebuild the output tree from scratch.

The previous output directory is removed, the Dockerfile, the requirements
manifest and the support library are copied, every source file is mirrored
with sanitized path segments, and main.py is generated with one router per
route.py and a lifespan hook registering the Beanie documents.

Examples:
  sequel build
  sequel build --dry-run
  sequel build --out build/service`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := current.BuildOptions()
			opts.DryRun = dryRun
			opts.Quiet = !output.IsVerbose() && !dryRun
			opts.Writer = cmd.OutOrStdout()

			builder, err := newBuilder(current, opts)
			if err != nil {
				return err
			}

			result, err := builder.Build(cmd.Context())
			if err != nil {
				globalLogger.Error("build failed", "error", err)
				return fmt.Errorf("build failed: %w", err)
			}

			if dryRun {
				output.Info(fmt.Sprintf("Dry run: %d operations planned, nothing written", result.Operations))
				return nil
			}

			output.Success(fmt.Sprintf("Built %s", current.Output.Dir))
			output.Step(fmt.Sprintf("%d routes, %d models, %d source files",
				len(result.Report.Routes), len(result.Report.Models), len(result.Report.Files)))
			output.Step(fmt.Sprintf("Entry point: %s", result.Entrypoint))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, dryRunFlagName, false, "Print the planned operations without writing anything")
	cmd.Flags().String(outFlagName, "", "Output directory (overrides output.dir)")
	withConfigKey(cmd.Flags(), outFlagName, "output.dir")

	return cmd
}
