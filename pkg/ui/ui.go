// Package ui prints the single-line messages shown to the user on stdout.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled messages. Colors are dropped when w is not a terminal.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Error prints err as a single line.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.failure.Render("Error:")+" "+err.Error())
}
