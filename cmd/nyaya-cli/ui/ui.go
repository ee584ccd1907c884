// Package ui provides the terminal presentation layer for the nyaya CLI:
// color, spinners, and simple formatted output.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	noColorFlag bool
	verboseFlag bool
)

// Init configures color/verbosity for the remainder of the process.
func Init(noColor, verbose bool) {
	noColorFlag = noColor
	verboseFlag = verbose
	if noColor {
		color.NoColor = true
	}
}

// Spinner wraps a spinner instance for indeterminate progress (used while
// a query is being analyzed).
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given status message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	return &Spinner{s: s}
}

// Start begins the spinner animation.
func (s *Spinner) Start() { s.s.Start() }

// Stop ends the spinner animation.
func (s *Spinner) Stop() { s.s.Stop() }

// Success prints a green checkmark line.
func Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(os.Stdout, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Error prints a red cross line to stderr.
func Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Info prints an informational line.
func Info(format string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(os.Stdout, "ℹ %s\n", fmt.Sprintf(format, args...))
}

// Section prints an underlined section header.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n%s\n", color.New(color.Bold).Sprint(title))
	underline := ""
	for i := 0; i < len(title); i++ {
		underline += "-"
	}
	fmt.Fprintf(os.Stdout, "%s\n", underline)
}

// KeyValue prints a "key: value" line, dimming the key.
func KeyValue(key string, value interface{}) {
	fmt.Fprintf(os.Stdout, "%s %v\n", color.New(color.Faint).Sprintf("%s:", key), value)
}
