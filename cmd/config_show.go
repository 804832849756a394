package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/smallwat3r/shhh/internal/workflows"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration used by every command: the config file
merged with the defaults and the SHHH_HOST and SHHH_RETRIES overrides.

Examples:
  shhh config show
  shhh config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		Logger.Debugf("Flags: json=%t", configShowJSON)

		result, err := workflows.ShowConfig(commandContext(cmd))
		if err != nil {
			if errors.Is(err, kerrors.ErrInvalidConfig) {
				fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
				fmt.Println(ui.Info.Sprint("→") + " Fix the file or rewrite it with " + ui.Code.Sprint("shhh config init --force"))
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(result.Config, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := result.Path
		if !result.Exists {
			source = "defaults, no config file"
		}
		fmt.Println(ui.Info.Sprint("Configuration") + " " + ui.Muted.Sprint(source) + ":")
		fmt.Println()

		c := result.Config
		fmt.Println(ui.Info.Sprint("Server:"))
		fmt.Printf("  %-18s %s\n", "URL:", ui.Success.Sprint(c.Server.URL))
		fmt.Printf("  %-18s %s\n", "Retries:", ui.Warning.Sprint(strconv.Itoa(c.Server.Retries)))
		fmt.Printf("  %-18s %s\n", "Backoff:", ui.Warning.Sprint(strconv.Itoa(c.Server.BackoffMs)+"ms"))
		fmt.Printf("  %-18s %s\n", "Timeout:", ui.Warning.Sprint(strconv.Itoa(c.Server.TimeoutSeconds)+"s"))
		fmt.Printf("  %-18s %s\n", "Detached retries:", ui.Warning.Sprint(strconv.FormatBool(c.Server.DetachedRetries)))
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Secrets:"))
		fmt.Printf("  %-18s %s\n", "Days:", ui.Warning.Sprint(strconv.Itoa(c.Secrets.Days)))
		fmt.Printf("  %-18s %s\n", "Tries:", ui.Warning.Sprint(strconv.Itoa(c.Secrets.Tries)))
		fmt.Printf("  %-18s %s\n", "Max length:", ui.Warning.Sprint(strconv.Itoa(c.Secrets.MaxLength)))
		fmt.Printf("  %-18s %s\n", "Have I Been Pwned:", ui.Warning.Sprint(strconv.FormatBool(c.Secrets.HaveIBeenPwned)))

		if !result.Exists {
			fmt.Println()
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("shhh config init") + " to write a config file")
		}
		return nil
	},
}
