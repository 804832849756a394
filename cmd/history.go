package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/history"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/smallwat3r/shhh/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyReverse bool
	historyActive  bool
	historyJSON    bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "limit number of entries shown")
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "show most recent entries first")
	historyCmd.Flags().BoolVar(&historyActive, "active", false, "only show secrets that have not expired yet")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON array")
}

// resetHistoryCommandState resets the history command's global state for testing.
func resetHistoryCommandState() {
	historyLimit = 0
	historyReverse = false
	historyActive = false
	historyJSON = false
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the secrets created from this machine",
	Long: `Lists the links of the secrets created from this machine.

Only links and metadata are recorded, never secrets or passphrases.

Examples:
  shhh history                # Full history
  shhh history -n 10          # Last 10 entries
  shhh history --reverse      # Most recent first
  shhh history --active       # Secrets that have not expired
  shhh history --json         # JSON output`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting history command")

	spinner, cleanup := startSpinner("Loading history...", verbose)
	defer cleanup()

	result, err := workflows.History(commandContext(cmd), workflows.HistoryOptions{
		Limit:   historyLimit,
		Reverse: historyReverse,
		Active:  historyActive,
	})
	if err != nil {
		spinner.FinalMSG = formatHistoryError(err)
		if isHistoryUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from history", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	spinner.FinalMSG = ""
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No history entries found.")
		} else {
			fmt.Println("No history entries found matching the filters.")
		}
		return nil
	}

	if historyJSON {
		return outputHistoryJSON(result.Entries)
	}

	outputHistoryDefault(result.Entries)
	return nil
}

// formatHistoryError formats a history error for display to the user.
func formatHistoryError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoHistory):
		return ui.Info.Sprint("ℹ") + " No history found. Secrets are recorded after running " + ui.Code.Sprint("shhh create")

	default:
		return ui.Error.Sprint("✗") + " Failed to read history: " + err.Error()
	}
}

// isHistoryUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isHistoryUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrNoHistory)
}

func outputHistoryJSON(entries []history.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputHistoryDefault(entries []history.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		expires := e.ExpiresOn
		if expires == "" {
			expires = "-"
		}
		fmt.Printf("%-19s  %-40s  %s\n", datetime, e.Link, expires)
	}
}
