package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled diagnostics. Out and ErrOut default to os.Stdout and
// os.Stderr when nil.
type Logger struct {
	Verbose bool
	Debug   bool

	Out    io.Writer
	ErrOut io.Writer
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.write(l.Out, os.Stdout, color.GreenString("[info] "), msg, args)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.write(l.Out, os.Stdout, color.CyanString("[debug] "), msg, args)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.write(l.ErrOut, os.Stderr, color.YellowString("[warn] "), msg, args)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.write(l.ErrOut, os.Stderr, color.RedString("[error] "), msg, args)
}

// ErrorfAndReturn logs the message at error level and returns it as an error.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	l.Errorf("%s", err.Error())
	return err
}

func (l Logger) write(w, fallback io.Writer, prefix, msg string, args []any) {
	if w == nil {
		w = fallback
	}
	fmt.Fprintln(w, prefix+fmt.Sprintf(msg, args...))
}
