package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStdin reads piped content from stdin, without the single final line
// break that shells and editors append.
// Returns an error if stdin is a terminal (no piped data), is empty, or cannot be read.
func ReadStdin() (string, error) {
	return readPiped(os.Stdin)
}

func readPiped(f *os.File) (string, error) {
	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}

	if stat.Mode()&os.ModeCharDevice != 0 {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe your secret to this command or use --secret)")
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("stdin is empty")
	}

	text := string(data)
	switch {
	case strings.HasSuffix(text, "\r\n"):
		text = text[:len(text)-2]
	case strings.HasSuffix(text, "\n"):
		text = text[:len(text)-1]
	}
	return text, nil
}
