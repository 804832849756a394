package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/smallwat3r/shhh/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	readPassphrase string
	readJSON       bool
)

func init() {
	readCmd.Flags().StringVarP(&readPassphrase, "passphrase", "p", "", "passphrase of the secret (prompted when omitted)")
	readCmd.Flags().BoolVar(&readJSON, "json", false, "output as JSON")
}

// resetReadCommandState resets the read command's global state for testing.
func resetReadCommandState() {
	readPassphrase = ""
	readJSON = false
}

var readCmd = &cobra.Command{
	Use:   "read <link|slug>",
	Short: "Reveal a secret from its link",
	Long: `Reveals the secret behind a share link. The server deletes the secret
once it has been read.

Examples:
  shhh read https://shhh.example.com/secret/<slug>
  shhh read <slug> --passphrase "Hunter2Hunter"
  shhh read <slug> --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

type readOutput struct {
	Slug     string `json:"slug"`
	Secret   string `json:"secret"`
	Attempts int    `json:"attempts"`
}

func runRead(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting read command")
	Logger.Debugf("Link: %s", args[0])

	passphrase, err := resolvePassphrase(readPassphrase)
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		return nil
	}

	spinner, cleanup := startSpinner("Reading secret...", verbose)
	defer cleanup()

	result, err := workflows.Read(commandContext(cmd), workflows.ReadOptions{
		Link:       args[0],
		Passphrase: passphrase,
		Server:     server,
		Logger:     spinnerLogger{s: spinner},
	})
	if err != nil {
		spinner.FinalMSG = formatReadError(err)
		if isReadUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Infof("Secret %s revealed after %d attempt(s)", result.Slug, result.Attempts)

	if readJSON {
		spinner.FinalMSG = ""
		data, err := json.MarshalIndent(readOutput{
			Slug:     result.Slug,
			Secret:   result.Secret,
			Attempts: result.Attempts,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret revealed " + ui.Muted.Sprint("it has now been deleted") + "\n" +
		ui.Secret.Sprint(result.Secret)
	return nil
}

// formatReadError formats a read error for display to the user.
func formatReadError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrMissingSlug):
		return ui.Error.Sprint("✗") + " Could not find a secret in the link\n" +
			ui.Info.Sprint("→") + " Links look like " + ui.Link.Sprint("https://<host>/secret/<slug>")

	case errors.Is(err, kerrors.ErrMissingPassphrase):
		return ui.Error.Sprint("✗") + " A passphrase is required\n" +
			ui.Info.Sprint("→") + " Pass it with " + ui.Flag.Sprint("--passphrase")

	case errors.Is(err, kerrors.ErrSecretExpired):
		return ui.Error.Sprint("✗") + " The secret has expired, been deleted or has already been read"

	case errors.Is(err, kerrors.ErrInvalidPassphrase):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrValidation):
		return ui.Error.Sprint("✗") + " The server rejected the request: " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check " + ui.Code.Sprint("shhh config show")

	default:
		return formatServerError("read secret", err)
	}
}

// isReadUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isReadUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrMissingSlug),
		errors.Is(err, kerrors.ErrMissingPassphrase),
		errors.Is(err, kerrors.ErrSecretExpired),
		errors.Is(err, kerrors.ErrInvalidPassphrase),
		errors.Is(err, kerrors.ErrValidation):
		return false
	default:
		return true
	}
}
