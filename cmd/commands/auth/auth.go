package auth

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/dcm/internal/config"
	"nathanbeddoewebdev/dcm/internal/services/auth"

	"github.com/spf13/cobra"
)

// storeFactory is replaced in tests.
var storeFactory = auth.DefaultStore

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage platform API tokens",
		Long: `Manage platform API tokens.

Tokens are stored in the OS keychain, one per platform host. Commands
without a URL argument use the configured api-url.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}

// resolveAccount returns the keychain account for the URL argument, or for
// the configured api-url when no argument is given.
func resolveAccount(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return auth.AccountForURL(strings.TrimSpace(args[0])), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	apiURL := cfg.WithEnv().APIURL
	if apiURL == "" {
		return "", fmt.Errorf("%w: pass a platform URL or run 'dcm config set api-url <url>'", config.ErrNotConfigured)
	}
	return auth.AccountForURL(apiURL), nil
}
