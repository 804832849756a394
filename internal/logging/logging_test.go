package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, ErrOut: &errOut}, &out, &errOut
}

func TestLevelsFollowFlags(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		verbose   bool
		debug     bool
		wantInfo  bool
		wantDebug bool
	}{
		{"quiet", false, false, false, false},
		{"verbose", true, false, true, false},
		{"debug", false, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, out, _ := newTestLogger(tt.verbose, tt.debug)
			log.Infof("retrying in %dms", 250)
			log.Debugf("attempt %d", 2)

			if got := strings.Contains(out.String(), "[info] retrying in 250ms"); got != tt.wantInfo {
				t.Errorf("Info line shown = %t, want %t (output %q)", got, tt.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] attempt 2"); got != tt.wantDebug {
				t.Errorf("Debug line shown = %t, want %t (output %q)", got, tt.wantDebug, out.String())
			}
		})
	}
}

func TestWarningsAndErrorsAlwaysReachErrOut(t *testing.T) {
	color.NoColor = true
	log, out, errOut := newTestLogger(false, false)

	log.Warnf("slow server")
	log.Errorf("failed to decode response: %s", "EOF")

	if out.Len() != 0 {
		t.Errorf("Expected nothing on Out, got %q", out.String())
	}
	want := "[warn] slow server\n[error] failed to decode response: EOF\n"
	if errOut.String() != want {
		t.Errorf("Expected %q, got %q", want, errOut.String())
	}
}

func TestErrorfAndReturn(t *testing.T) {
	color.NoColor = true
	log, _, errOut := newTestLogger(false, false)

	err := log.ErrorfAndReturn("Failed to load config: %v", "bad toml")

	if err == nil || err.Error() != "Failed to load config: bad toml" {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), "[error] Failed to load config: bad toml") {
		t.Errorf("Expected the error to be logged, got %q", errOut.String())
	}
}
