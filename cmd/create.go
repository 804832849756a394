package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/smallwat3r/shhh/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	createSecret         string
	createPassphrase     string
	createDays           int
	createTries          int
	createHaveIBeenPwned bool
	createCopy           bool
	createJSON           bool
)

func init() {
	createCmd.Flags().StringVarP(&createSecret, "secret", "s", "", "secret to share (read from stdin when omitted)")
	createCmd.Flags().StringVarP(&createPassphrase, "passphrase", "p", "", "passphrase to read the secret (prompted when omitted)")
	createCmd.Flags().IntVar(&createDays, "days", 0, "number of days to keep the secret alive (1-7)")
	createCmd.Flags().IntVar(&createTries, "tries", 0, "number of wrong passphrases allowed before deletion (3-10)")
	createCmd.Flags().BoolVar(&createHaveIBeenPwned, "haveibeenpwned", false, "reject passphrases found in known data breaches")
	createCmd.Flags().BoolVarP(&createCopy, "copy", "c", false, "copy the link to the clipboard")
	createCmd.Flags().BoolVar(&createJSON, "json", false, "output as JSON")
}

// resetCreateCommandState resets the create command's global state for testing.
func resetCreateCommandState() {
	createSecret = ""
	createPassphrase = ""
	createDays = 0
	createTries = 0
	createHaveIBeenPwned = false
	createCopy = false
	createJSON = false
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Store a secret and get a one-time link",
	Long: `Stores a secret on the shhh server and prints the link to share.

The secret is read from --secret, or from stdin when piped. The passphrase
is read from --passphrase, SHHH_PASSPHRASE, or prompted for.

Examples:
  shhh create --secret "db password" --days 2 --tries 3
  cat token.txt | shhh create --copy
  shhh create --secret "hello" --json`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

type createOutput struct {
	Link      string `json:"link"`
	ExpiresOn string `json:"expires_on"`
	Days      int    `json:"days"`
	Tries     int    `json:"tries"`
	Attempts  int    `json:"attempts"`
	Copied    bool   `json:"copied"`
}

func runCreate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting create command")

	secret, err := resolveSecret(createSecret)
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		return nil
	}
	passphrase, err := resolvePassphrase(createPassphrase)
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		return nil
	}

	spinner, cleanup := startSpinner("Creating secret...", verbose)
	defer cleanup()

	opts := workflows.CreateOptions{
		Secret:         secret,
		Passphrase:     passphrase,
		Days:           createDays,
		Tries:          createTries,
		HaveIBeenPwned: createHaveIBeenPwned,
		Copy:           createCopy,
		Server:         server,
		Logger:         spinnerLogger{s: spinner},
	}

	result, err := workflows.Create(commandContext(cmd), opts)
	if err != nil {
		spinner.FinalMSG = formatCreateError(err)
		if isCreateUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Infof("Secret created after %d attempt(s)", result.Attempts)
	if result.HistoryErr != nil {
		Logger.Warnf("Failed to record secret in history: %v", result.HistoryErr)
	}

	if createJSON {
		spinner.FinalMSG = ""
		data, err := json.MarshalIndent(createOutput{
			Link:      result.Link,
			ExpiresOn: result.ExpiresOn,
			Days:      result.Days,
			Tries:     result.Tries,
			Attempts:  result.Attempts,
			Copied:    result.Copied,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	finalMessage := ui.Success.Sprint("✓") + " Secret created\n" +
		"    link:    " + ui.Link.Sprint(result.Link) + "\n" +
		"    expires: " + ui.Highlight.Sprint(result.ExpiresOn) + "\n" +
		"    tries:   " + ui.Highlight.Sprint(strconv.Itoa(result.Tries))
	switch {
	case result.Copied:
		finalMessage += "\n" + ui.Info.Sprint("→") + " Link copied to the clipboard"
	case result.CopyErr != nil:
		finalMessage += "\n" + ui.Warning.Sprint("⚠") + " Could not copy the link: " + result.CopyErr.Error()
	}

	spinner.FinalMSG = finalMessage
	return nil
}

// formatCreateError formats a create error for display to the user.
func formatCreateError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrEmptySecret):
		return ui.Error.Sprint("✗") + " The secret is empty\n" +
			ui.Info.Sprint("→") + " Pass it with " + ui.Flag.Sprint("--secret") + " or pipe it to " + ui.Code.Sprint("shhh create")

	case errors.Is(err, kerrors.ErrMissingPassphrase):
		return ui.Error.Sprint("✗") + " A passphrase is required\n" +
			ui.Info.Sprint("→") + " Pass it with " + ui.Flag.Sprint("--passphrase")

	case errors.Is(err, kerrors.ErrSecretTooLong),
		errors.Is(err, kerrors.ErrWeakPassphrase),
		errors.Is(err, kerrors.ErrInvalidDays),
		errors.Is(err, kerrors.ErrInvalidTries):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrValidation):
		return ui.Error.Sprint("✗") + " The server rejected the secret: " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check " + ui.Code.Sprint("shhh config show")

	default:
		return formatServerError("create secret", err)
	}
}

// isCreateUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isCreateUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrEmptySecret),
		errors.Is(err, kerrors.ErrMissingPassphrase),
		errors.Is(err, kerrors.ErrSecretTooLong),
		errors.Is(err, kerrors.ErrWeakPassphrase),
		errors.Is(err, kerrors.ErrInvalidDays),
		errors.Is(err, kerrors.ErrInvalidTries),
		errors.Is(err, kerrors.ErrValidation):
		return false
	default:
		return true
	}
}

// formatServerError formats failures to reach or understand the server.
func formatServerError(action string, err error) string {
	switch {
	case errors.Is(err, kerrors.ErrTransport):
		return ui.Error.Sprint("✗") + " Could not reach the server: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check the URL with " + ui.Code.Sprint("shhh config show") + " or pass " + ui.Flag.Sprint("--server")

	case errors.Is(err, kerrors.ErrServerError):
		return ui.Error.Sprint("✗") + " The server kept failing: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Try again later"

	case errors.Is(err, kerrors.ErrDecode), errors.Is(err, kerrors.ErrUnexpectedStatus):
		return ui.Error.Sprint("✗") + " The server sent an unexpected response: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Make sure " + ui.Flag.Sprint("--server") + " points at a shhh server"

	case errors.Is(err, context.DeadlineExceeded):
		return ui.Error.Sprint("✗") + " Timed out waiting for the server\n" +
			ui.Info.Sprint("→") + " Raise " + ui.Code.Sprint("timeout_seconds") + " in the config"

	case errors.Is(err, context.Canceled):
		return ui.Warning.Sprint("⚠") + " Cancelled"

	default:
		return ui.Error.Sprint("✗") + " Failed to " + action + ": " + err.Error()
	}
}

// commandContext returns the command context, or a background context when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
