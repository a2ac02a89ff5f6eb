package commands

import (
	"fmt"

	"github.com/simonhull/sequel"
	"github.com/spf13/cobra"
)

// VersionCmd creates and returns the 'version' command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the sequel version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sequel %s\n", sequel.Version)
			return err
		},
	}
}
