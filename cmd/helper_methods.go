package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/smallwat3r/shhh/internal/ui"
	"github.com/smallwat3r/shhh/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// spinnerLogger pauses the spinner around warnings and errors so retry
// notices are not drawn over by the spinner line.
type spinnerLogger struct {
	s *spinner.Spinner
}

func (l spinnerLogger) Debugf(msg string, args ...any) {
	Logger.Debugf(msg, args...)
}

func (l spinnerLogger) Warnf(msg string, args ...any) {
	l.pause(func() { Logger.Warnf(msg, args...) })
}

func (l spinnerLogger) Errorf(msg string, args ...any) {
	l.pause(func() { Logger.Errorf(msg, args...) })
}

func (l spinnerLogger) pause(fn func()) {
	if l.s == nil || !l.s.Active() {
		fn()
		return
	}
	l.s.Stop()
	fn()
	l.s.Restart()
}

// Passphrase prompts, swapped in tests.
var (
	promptPassphrase        = utils.ReadPassphrase
	promptPassphraseFromTTY = utils.ReadPassphraseFromTTY
)

// resolvePassphrase returns the flag value or SHHH_PASSPHRASE, or prompts for
// one. When stdin is piped the prompt reads from the controlling terminal.
func resolvePassphrase(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("SHHH_PASSPHRASE"); env != "" {
		Logger.Debugf("Using passphrase from SHHH_PASSPHRASE")
		return env, nil
	}

	if utils.IsTerminal() {
		return promptPassphrase("Passphrase: ")
	}
	Logger.Debugf("Stdin is not a terminal, prompting on the controlling terminal")
	return promptPassphraseFromTTY("Passphrase: ")
}

// resolveSecret returns the flag value, or the piped stdin content.
func resolveSecret(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	secret, err := utils.ReadStdin()
	if err != nil {
		return "", err
	}
	Logger.Debugf("Read %d bytes from stdin", len(secret))
	return secret, nil
}
