package cmd

import (
	"os"

	"nathanbeddoewebdev/dcm/cmd/commands/audit"
	"nathanbeddoewebdev/dcm/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/dcm/cmd/commands/config"
	"nathanbeddoewebdev/dcm/cmd/commands/onprem"
	"nathanbeddoewebdev/dcm/internal/config"
	"nathanbeddoewebdev/dcm/internal/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "dcm",
		Short: "Inspect and manage on-premises datacenter provider configurations",
		Long: `dcm is a command-line console for the on-premises datacenter provider of a
database platform. It shows the provider's regions, zones, nodes and access
keys, lists node instances, builds the seed for the configuration wizard,
and deletes the provider configuration when no universe uses it.

Quick start:
  dcm config set api-url https://yw.example.com
  dcm config set customer-uuid <uuid>
  dcm auth login                   # Store your API token
  dcm onprem show                  # Provider summary
  dcm onprem nodes                 # Node instances`,
		PersistentPreRunE: initLogging,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(audit.NewCommand())
	cmd.AddCommand(onprem.NewCommand())

	return cmd
}

// initLogging configures the base logger from the persisted config. A
// broken config file is not fatal here; the command that needs the config
// reports it.
func initLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
