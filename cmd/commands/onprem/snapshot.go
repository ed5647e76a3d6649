package onprem

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"nathanbeddoewebdev/dcm/internal/auditlog"
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/snapshot"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// SnapshotCommand returns a cobra.Command that prints the wizard seed.
func SnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the configuration wizard seed",
		Long: `Fetch the on-premises provider, its regions, nodes, instance types and
access keys, and print the JSON seed used to prefill the configuration
wizard.

The seed contains the provider's SSH private key. Use --out to write it to
a file readable only by you.

Examples:
  dcm onprem snapshot
  dcm onprem snapshot --out seed.json`,
		RunE:         runSnapshot,
		SilenceUsage: true,
	}

	cmd.Flags().String("out", "", "Write the seed to this file instead of stdout")

	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	start := time.Now()
	session := e.newSession()

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	if err := runStep(ctx, interactive, "Fetching provider configuration...", session.Mount); err != nil {
		return err
	}

	st := session.State()
	entry := &auditlog.AuditEntry{
		Command:      "dcm onprem snapshot",
		Provider:     domain.ProviderTypeOnPrem,
		ResourceType: "provider",
	}
	if p, ok := st.Provider(); ok {
		entry.ResourceID = p.UUID
		entry.ResourceName = p.Name
	}

	out, _ := cmd.Flags().GetString("out")
	out = strings.TrimSpace(out)
	entry.Args = auditlog.JoinArgs(os.Args[1:])

	if snap := session.Store().Get(); snap != nil {
		err = writeSeed(cmd, snap, out)
	} else {
		err = seedUnavailable(st)
	}
	auditlog.Record(ctx, e.log, entry, start, err)
	return err
}

func writeSeed(cmd *cobra.Command, snap *snapshot.Snapshot, path string) error {
	if path == "" {
		return printJSON(cmd, snap)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode seed: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write seed: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Seed written to %s\n", path)
	return nil
}
