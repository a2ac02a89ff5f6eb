package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/sequel/internal/config"
	"github.com/simonhull/sequel/internal/kit/input"
	"github.com/simonhull/sequel/internal/kit/output"
	"github.com/spf13/cobra"
)

// InitCmd creates and returns the 'init' command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sequel.yaml populated with the defaults",
		Long: `Create sequel.yaml in the project root (or the file named by --config)
holding every setting with its default value, ready to be edited. An existing file is only
replaced after confirmation, or with --force.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := cmd.Flags().GetString(configFlagName)
			if err != nil {
				return err
			}
			root, err := cmd.Flags().GetString(rootFlagName)
			if err != nil {
				return err
			}
			target = resolveConfigFile(cmd, target, root)

			if _, err := os.Stat(target); err == nil && !force {
				prompt := input.New(cmd.InOrStdin(), cmd.OutOrStdout())
				if !prompt.Confirm(fmt.Sprintf("%s already exists. Overwrite?", target), false) {
					output.Info(fmt.Sprintf("Kept existing %s", target))
					return nil
				}
			}

			if err := config.Save(target, config.Default()); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			output.Success(fmt.Sprintf("Created %s", target))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, forceFlagName, "f", false, "Overwrite an existing config file without asking")

	return cmd
}
