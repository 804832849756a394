package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shhh configuration",
	Long: `Provides commands for managing the user configuration file.

The file lives in the user config directory (for example
~/.config/shhh/config.toml). SHHH_HOST and SHHH_RETRIES override it.

Examples:
  # Write a config pointing at your server
  shhh config init --server https://shhh.example.com

  # Show the effective configuration
  shhh config show`,
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}
