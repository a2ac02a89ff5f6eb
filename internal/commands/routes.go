package commands

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/simonhull/sequel/internal/discovery"
	"github.com/spf13/cobra"
)

// RoutesCmd creates and returns the 'routes' command
func RoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List discovered routes and document models",
		Long: `Walk the source tree and print the route table and the Beanie documents
main.py would register, in the order they are emitted. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := newBuilder(current, current.BuildOptions())
			if err != nil {
				return err
			}

			report, err := builder.Discover(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), formatRoutes(report), "\n", formatModels(report))
			return err
		},
	}
}

func formatRoutes(report *discovery.Report) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Prefix", "Router", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, r := range report.Routes {
		table.Append([]string{"/" + r.Prefix, r.Alias, r.RelPath})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Routes %d", len(report.Routes)), "", ""})
	table.Render()

	return buf.String()
}

func formatModels(report *discovery.Report) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Document", "Module", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, m := range report.Models {
		table.Append([]string{m.Class, m.ModulePath, m.RelPath})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Documents %d", len(report.Models)), "", ""})
	table.Render()

	return buf.String()
}
