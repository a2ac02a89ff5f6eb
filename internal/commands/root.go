package commands

import (
	"github.com/simonhull/sequel"
	"github.com/simonhull/sequel/internal/config"
	"github.com/simonhull/sequel/internal/kit/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the sequel CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var configFile string

	cmd := &cobra.Command{
		Use:   "sequel",
		Short: "Assemble a FastAPI service from a file-per-route project",
		Long: `Sequel turns a convention-driven Python project into a self-contained
FastAPI code base.

Routes are discovered from route.py files under src/api, where bracketed
directories such as [airport_code] become path parameters. Beanie documents
are discovered under src/models/beanie and registered at startup. The output
tree (dist/ by default) holds the support library, the sources and a
generated main.py.

Settings are read from sequel.yaml and SEQUEL_* environment variables.`,
		Version:       sequel.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())

			if cmd.Annotations[skipConfigAnnotation] != "" {
				return nil
			}

			cfg, err := loadSettings(cmd, configFile)
			if err != nil {
				return err
			}
			current = cfg

			configureLogger(cfg.Project.Root, cfg.Log, verbose)
			globalLogger.Debug("configuration loaded", "command", cmd.Name(), "root", cfg.Project.Root)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, verboseFlagName, "v", false, "Enable verbose output for debugging")
	flags.StringVar(&configFile, configFlagName, config.FileName, "Path to the config file")
	flags.StringP(rootFlagName, "C", ".", "Project root directory")
	withConfigKey(flags, rootFlagName, "project.root")

	return cmd
}

// NewApp returns the root command with every subcommand registered.
func NewApp() *cobra.Command {
	cmd := RootCmd()
	cmd.AddCommand(BuildCmd())
	cmd.AddCommand(RoutesCmd())
	cmd.AddCommand(DiffCmd())
	cmd.AddCommand(InitCmd())
	cmd.AddCommand(VersionCmd())
	return cmd
}
