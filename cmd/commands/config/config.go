package config

import (
	"nathanbeddoewebdev/dcm/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dcm configuration",
		Long: "View and modify persistent dcm settings.\n\n" +
			"Configuration is stored at ~/.config/dcm/config.json. DCM_API_URL and\n" +
			"DCM_CUSTOMER_UUID override the stored platform settings.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
