package auth

import (
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/dcm/internal/services/auth"
	"nathanbeddoewebdev/dcm/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [url]",
		Short: "Show authentication status for a platform",
		Long: `Show whether an API token is stored for a platform.

Example:
  dcm auth status`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := resolveAccount(args)
			if err != nil {
				return err
			}
			store := storeFactory()

			// Use TUI in interactive terminal.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if err := tui.RunAuthStatus(store, []string{account}); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			_, err = store.GetToken(account)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", account)
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", account)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", account, err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
