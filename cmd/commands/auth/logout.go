package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/dcm/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout [url]",
		Short: "Remove the stored API token for a platform",
		Long: `Remove the stored API token for a platform from the local keychain.

Example:
  dcm auth logout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := resolveAccount(args)
			if err != nil {
				return err
			}

			err = storeFactory().DeleteToken(account)
			switch {
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "Not logged in to %s\n", account)
				return nil
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for %s\n", account)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
