// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output and running the CLI against a fake server.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/smallwat3r/shhh/internal/configs"
	logger "github.com/smallwat3r/shhh/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points the user settings at temporary directories and
// clears the environment overrides.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempUserDir := t.TempDir()

	originalUserSettings := configs.UserShhhSettings
	t.Cleanup(func() {
		configs.UserShhhSettings = originalUserSettings
		ResetGlobalState()
	})

	configs.UserShhhSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
	}

	t.Setenv("SHHH_HOST", "")
	t.Setenv("SHHH_RETRIES", "")
	t.Setenv("SHHH_PASSPHRASE", "")
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	return tempUserDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// withStdin replaces os.Stdin with a pipe holding content for the rest of the test.
func withStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdin pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("Failed to write stdin content: %v", err)
	}
	w.Close()

	originalStdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = originalStdin
		r.Close()
	})
}

// stubPassphrasePrompts replaces both passphrase prompts. The returned
// pointers record the prompt that was used.
func stubPassphrasePrompts(t *testing.T, passphrase string) (stdinPrompted, ttyPrompted *bool) {
	t.Helper()
	var fromStdin, fromTTY bool
	originalPrompt, originalTTYPrompt := promptPassphrase, promptPassphraseFromTTY
	promptPassphrase = func(string) (string, error) {
		fromStdin = true
		return passphrase, nil
	}
	promptPassphraseFromTTY = func(string) (string, error) {
		fromTTY = true
		return passphrase, nil
	}
	t.Cleanup(func() {
		promptPassphrase, promptPassphraseFromTTY = originalPrompt, originalTTYPrompt
	})
	return &fromStdin, &fromTTY
}

// runCLI runs the shhh CLI with the given arguments and returns its output.
// verboseFlag keeps the spinner from drawing over the captured output.
func runCLI(verboseFlag bool, args ...string) (string, error) {
	verbose = verboseFlag
	Logger = logger.Logger{Verbose: verboseFlag}

	return captureOutput(func() error {
		root := GetRootCmd()
		root.SetArgs(append([]string{}, args...))
		if verboseFlag {
			if err := root.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
				return err
			}
		}
		return root.Execute()
	})
}

// subcommand looks up a registered command by path for assertions.
func subcommand(path ...string) *cobra.Command {
	c, _, err := GetRootCmd().Find(path)
	if err != nil {
		return nil
	}
	return c
}
