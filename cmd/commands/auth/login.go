package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/dcm/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [url]",
		Short: "Store an API token for a platform",
		Long: `Store an API token for a platform using the local keychain.

Without a URL the configured api-url is used. In a terminal you are
prompted for the token; otherwise it is read from --token or stdin.

Examples:
  dcm auth login
  dcm auth login https://yw.example.com
  echo "$TOKEN" | dcm auth login https://yw.example.com`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	account, err := resolveAccount(args)
	if err != nil {
		return err
	}
	store := storeFactory()

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)

	if token == "" && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		result, err := tui.RunAuthLogin(account, store)
		if err != nil {
			return err
		}
		if result == nil || !result.Saved {
			fmt.Fprintln(cmd.ErrOrStderr(), "Login cancelled.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved token for %s\n", account)
		return nil
	}

	if token == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := store.SetToken(account, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved token for %s\n", account)
	return nil
}
