package onprem

import (
	"fmt"
	"net/url"
	"os"

	"nathanbeddoewebdev/dcm/internal/onprem/services"
	"nathanbeddoewebdev/dcm/internal/onprem/tui"
	"nathanbeddoewebdev/dcm/internal/onprem/view"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ShowCommand returns a cobra.Command that displays the provider summary.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the on-premises provider configuration",
		Long: `Display the on-premises datacenter provider configuration: key pairs,
node count, and the regions and zones nodes are placed in.

In a terminal this opens an interactive screen:
  e  edit (prints the configuration wizard seed on exit)
  n  manage nodes
  d  delete the configuration
  r  refresh
  q  quit

Examples:
  # Interactive mode (TUI)
  dcm onprem show

  # Node list section
  dcm onprem show --section nodes

  # JSON output for scripting
  dcm onprem show -o json`,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().String("section", string(view.SectionSummary), "Section to show: summary or nodes")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	section, _ := cmd.Flags().GetString("section")
	return runSection(cmd, view.ParseSection(section))
}

// runSection opens the interactive screen at section, or prints it when
// output is redirected or -o was given.
func runSection(cmd *cobra.Command, section view.Section) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	session := e.newSession()

	output, _ := cmd.Flags().GetString("output")
	if cmd.Flags().Changed("output") || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := session.Mount(ctx); err != nil {
			return err
		}
		st := session.State()
		printFetchWarnings(cmd, st)
		return printSection(cmd, st, section, output)
	}

	location := view.WithSection(&url.URL{Path: "/onprem"}, section)
	result, err := tui.RunProviderScreen(ctx, session, location, tui.OnRefresh(e.service.Invalidate))
	if err != nil {
		return fmt.Errorf("onprem show failed: %w", err)
	}
	if result == nil || result.Action != tui.ActionEdit {
		return nil
	}

	snap := session.Store().Get()
	if snap == nil {
		return seedUnavailable(result.State)
	}
	return printJSON(cmd, snap)
}

func printSection(cmd *cobra.Command, st services.State, section view.Section, output string) error {
	switch section {
	case view.SectionNodes:
		rows := view.NodeRows(st.Nodes.Data, st.Regions.Data)
		if output == "json" {
			return printJSON(cmd, rows)
		}
		// The node list does not depend on a provider being configured.
		printNodeTable(cmd, rows)
		return nil

	default:
		summary := view.BuildSummary(st.SummaryInputs())
		if output == "json" {
			return printJSON(cmd, summary)
		}
		if summary == nil {
			fmt.Fprintln(cmd.OutOrStdout(), noProviderText)
			return nil
		}
		printSummary(cmd, summary)
		return nil
	}
}

// printFetchWarnings reports provider-scoped collections that failed.
func printFetchWarnings(cmd *cobra.Command, st services.State) {
	warn := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load %s: %v\n", what, err)
		}
	}
	warn("nodes", st.Nodes.Err)
	warn("instance types", st.InstanceTypes.Err)
	warn("access keys", st.AccessKeys.Err)
	warn("universes", st.Universes.Err)
}
