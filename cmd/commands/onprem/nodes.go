package onprem

import (
	"nathanbeddoewebdev/dcm/internal/onprem/view"

	"github.com/spf13/cobra"
)

// NodesCommand returns a cobra.Command that opens the node list section.
func NodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the on-premises provider nodes",
		Long: `List the nodes registered with the on-premises datacenter provider.

Same as 'dcm onprem show --section nodes'. Nodes whose region and zone
match no configured zone are reported as unplaced.

Examples:
  dcm onprem nodes
  dcm onprem nodes -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, view.SectionNodes)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}
