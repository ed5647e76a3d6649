package onprem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/dcm/internal/auditlog"
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/tui"
	"nathanbeddoewebdev/dcm/internal/onprem/view"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DeleteCommand returns a cobra.Command that deletes the provider
// configuration.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the on-premises provider configuration",
		Long: `Delete the on-premises datacenter provider configuration.

The delete is refused while any universe is deployed on the provider.
Without --yes you are asked to confirm; non-interactive use requires --yes.

Examples:
  dcm onprem delete
  dcm onprem delete --yes`,
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	session := e.newSession()
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))

	if err := runStep(ctx, interactive, "Fetching provider configuration...", session.Mount); err != nil {
		return err
	}

	summary := view.BuildSummary(session.State().SummaryInputs())
	if summary == nil {
		return fmt.Errorf("nothing to delete: %w", domain.ErrProviderNotFound)
	}
	if summary.DeleteDisabled {
		return fmt.Errorf("cannot delete %q: used by %s: %w",
			summary.ProviderName, strings.Join(summary.Universes, ", "), domain.ErrProviderInUse)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !interactive {
			return fmt.Errorf("refusing to delete without confirmation: pass --yes")
		}
		if err := tui.ConfirmDeleteForm(summary); err != nil {
			if errors.Is(err, tui.ErrDeleteAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Delete cancelled.")
				return nil
			}
			return err
		}
	}

	ctx = auditlog.WithMetadata(ctx, auditlog.Metadata{
		Provider:     domain.ProviderTypeOnPrem,
		ResourceType: "provider",
		ResourceID:   summary.ProviderUUID,
		ResourceName: summary.ProviderName,
		Args:         auditlog.JoinArgs(os.Args[1:]),
	})

	// The outer ctx carries the audit metadata.
	del := func(context.Context) error { return session.Delete(ctx, summary.ProviderUUID) }
	if err := runStep(ctx, interactive, "Deleting provider configuration...", del); err != nil {
		return fmt.Errorf("failed to delete provider %q: %w", summary.ProviderName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted on-premises provider configuration %q (%s)\n",
		summary.ProviderName, summary.ProviderUUID)
	return nil
}

// runStep runs action behind a spinner when interactive.
func runStep(ctx context.Context, interactive bool, title string, action func(context.Context) error) error {
	if !interactive {
		return action(ctx)
	}
	return tui.WithSpinner(title, action)
}
