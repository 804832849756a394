package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/smallwat3r/shhh/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configInitServer   string
	configInitRetries  int
	configInitBackoff  int
	configInitTimeout  int
	configInitDetached bool
	configInitDays     int
	configInitTries    int
	configInitForce    bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitServer, "url", "", "shhh server URL")
	configInitCmd.Flags().IntVar(&configInitRetries, "retries", 0, "number of retries when the server answers 500")
	configInitCmd.Flags().IntVar(&configInitBackoff, "backoff", 0, "initial delay between retries in milliseconds, doubled after each retry")
	configInitCmd.Flags().IntVar(&configInitTimeout, "timeout", 0, "time budget for one command in seconds")
	configInitCmd.Flags().BoolVar(&configInitDetached, "detached-retries", false, "return the first answer and retry in the background")
	configInitCmd.Flags().IntVar(&configInitDays, "days", 0, "default number of days to keep secrets alive")
	configInitCmd.Flags().IntVar(&configInitTries, "tries", 0, "default number of passphrase tries")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitServer = ""
	configInitRetries = 0
	configInitBackoff = 0
	configInitTimeout = 0
	configInitDetached = false
	configInitDays = 0
	configInitTries = 0
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long: `Writes a config file from the defaults and the given flags. Only
flags you pass are changed from the defaults.

Examples:
  shhh config init --url https://shhh.example.com
  shhh config init --retries 5 --backoff 500 --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		flags := cmd.Flags()
		opts := workflows.InitConfigOptions{Force: configInitForce}
		if flags.Changed("url") {
			opts.Server = &configInitServer
		}
		if flags.Changed("retries") {
			opts.Retries = &configInitRetries
		}
		if flags.Changed("backoff") {
			opts.BackoffMs = &configInitBackoff
		}
		if flags.Changed("timeout") {
			opts.TimeoutSeconds = &configInitTimeout
		}
		if flags.Changed("detached-retries") {
			opts.DetachedRetries = &configInitDetached
		}
		if flags.Changed("days") {
			opts.Days = &configInitDays
		}
		if flags.Changed("tries") {
			opts.Tries = &configInitTries
		}

		result, err := workflows.InitConfig(commandContext(cmd), opts)
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrConfigExists):
				fmt.Println(ui.Warning.Sprint("⚠") + " A config file already exists")
				fmt.Println(ui.Info.Sprint("→") + " To overwrite it, run " + ui.Code.Sprint("shhh config init --force"))
				return nil
			case errors.Is(err, kerrors.ErrInvalidConfig):
				fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
				return nil
			default:
				return Logger.ErrorfAndReturn("Failed to write config: %v", err)
			}
		}

		Logger.Infof("Config written to %s", result.Path)
		verb := "created"
		if result.Overwritten {
			verb = "overwritten"
		}
		fmt.Println(ui.Success.Sprint("✓") + " Config " + verb + ": " + ui.Highlight.Sprint(result.Path))
		fmt.Println(ui.Info.Sprint("→") + " Secrets will be sent to " + ui.Link.Sprint(result.Config.Server.URL))
		return nil
	},
}
