package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes UI components to a writer. Boxes go to the error stream so
// that table and JSON output on stdout stays machine readable.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stderr is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stderr
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// PrintResult renders r at the printer width
func (p *Printer) PrintResult(r *Result) {
	_, _ = fmt.Fprintln(p.out, r.SetWidth(p.width).Render())
}

// PrintError prints a failure box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.PrintResult(NewFailureResult(title, err, troubleshooting))
}

// PrintWarnings prints a warning box, or nothing when items is empty
func (p *Printer) PrintWarnings(title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.PrintResult(NewWarningResult(title, items))
}
