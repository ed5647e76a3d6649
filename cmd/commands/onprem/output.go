package onprem

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/services"
	"nathanbeddoewebdev/dcm/internal/onprem/view"

	"github.com/spf13/cobra"
)

const noProviderText = "No on-premises datacenter provider configured."

// printJSON encodes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummary prints the provider fields followed by a region/zone table.
func printSummary(cmd *cobra.Command, s *view.Summary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  Provider:\t%s\n", s.ProviderName)
	fmt.Fprintf(w, "  UUID:\t%s\n", s.ProviderUUID)
	fmt.Fprintf(w, "  Key Pairs:\t%s\n", s.KeyPairs)
	fmt.Fprintf(w, "  Nodes:\t%d\n", s.NodeCount)
	if s.DeleteDisabled {
		fmt.Fprintf(w, "  Universes:\t%s\n", strings.Join(s.Universes, ", "))
	}
	w.Flush()

	fmt.Fprintln(cmd.OutOrStdout())
	if s.NoRegions {
		fmt.Fprintln(cmd.OutOrStdout(), "No Regions Configured")
		return
	}

	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "REGION\tZONE\tNODES\tIPS")
	for _, r := range s.Regions {
		if len(r.Zones) == 0 {
			fmt.Fprintf(w, "%s\t-\t0\t\n", r.Name)
			continue
		}
		for _, z := range r.Zones {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Name, z.Name, z.Count(), strings.Join(z.IPs(), ", "))
		}
	}
	w.Flush()

	if s.SetupNodes {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNo nodes yet. Set them up with 'dcm onprem nodes'.")
	}
}

// printNodeTable prints one row per node.
func printNodeTable(cmd *cobra.Command, rows []view.NodeRow) {
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No nodes configured.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "IP\tNAME\tREGION\tZONE\tINSTANCE TYPE\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.IP, dash(r.Name), r.Region, r.Zone, r.InstanceType, nodeStatus(r))
	}
	w.Flush()
}

func nodeStatus(r view.NodeRow) string {
	switch {
	case !r.Placed:
		return "unplaced"
	case r.InUse:
		return "in use"
	default:
		return "free"
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// seedUnavailable explains why the wizard seed was not built.
func seedUnavailable(st services.State) error {
	if _, ok := st.Provider(); !ok {
		return fmt.Errorf("cannot build wizard seed: %w", domain.ErrProviderNotFound)
	}

	var failed []string
	for _, c := range []struct {
		name string
		err  error
	}{
		{"nodes", st.Nodes.Err},
		{"instance types", st.InstanceTypes.Err},
		{"access keys", st.AccessKeys.Err},
	} {
		if c.err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", c.name, c.err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("cannot build wizard seed: failed to load %s", strings.Join(failed, "; "))
	}
	return fmt.Errorf("cannot build wizard seed: provider data is still loading")
}
