package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	logger "github.com/smallwat3r/shhh/internal/logging"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	server  string
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "shhh",
		Short: "Share secrets through a shhh server with a one-time link.",
		Long: `shhh is a command-line client for a shhh server.

Secrets are encrypted server side with a passphrase, and can be read back
only once through the returned link, for a limited number of days.

Examples:
  shhh create --secret "db password" --days 2
  echo "db password" | shhh create --copy
  shhh read https://shhh.example.com/secret/<slug>
  shhh history -n 5 --active`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
			if server != "" {
				Logger.Debugf("Using server override: %s", server)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			figure.NewColorFigure("shhh", "small", "green", true).Print()
			fmt.Println()
			fmt.Println("Run " + ui.Code.Sprint("shhh --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&server, "server", "", "shhh server URL (overrides config and SHHH_HOST)")

	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(readCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	server = ""
	resetCreateCommandState()
	resetReadCommandState()
	resetHistoryCommandState()
	resetConfigShowState()
	resetConfigInitState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marker on every flag of c and its
// subcommands to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
