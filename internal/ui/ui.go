package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
)

var out io.Writer = os.Stderr

// SetOutput redirects all console messages, e.g. to io.Discard while the TUI
// owns the terminal.
func SetOutput(w io.Writer) {
	out = w
}

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(out, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(out, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(out, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(out, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(out, format+"\n", a...)
}
