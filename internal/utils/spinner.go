package utils

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// StartSpinner shows a spinner with suffix on w while work is in progress.
// The returned func stops it. Nothing is shown unless w is a terminal.
func StartSpinner(w io.Writer, suffix string) (stop func()) {
	if !IsTerminal(w) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	if !NoColor() {
		// Only fails on unknown color names
		_ = s.Color("cyan")
	}
	s.Start()
	return s.Stop
}
