package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func StartSpinner(w io.Writer, text string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.WithWriter(w).WithRemoveWhenDone(true).Start(text)
	return spinner
}

// UpdateSpinner and StopSpinner accept a nil spinner so callers need not check.
func UpdateSpinner(spinner *pterm.SpinnerPrinter, text string) {
	if spinner == nil {
		return
	}
	spinner.UpdateText(text)
}

func StopSpinner(spinner *pterm.SpinnerPrinter) {
	if spinner == nil {
		return
	}
	_ = spinner.Stop()
}
