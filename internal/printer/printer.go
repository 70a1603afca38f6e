// Package printer formats operator CLI output with color.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
)

func init() {
	// Color stays on when piped; NO_COLOR turns it off.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	blue   = color.New(color.FgBlue)
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
)

// Printer writes formatted output to a single writer.
type Printer struct {
	out io.Writer
}

// New returns a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Success prints a message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(p.out, msg)
}

// Info prints a plain message.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning prints a message in yellow.
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.out, "! %s", fmt.Sprintf(format, a...))
}

// Heading prints a bold line followed by a newline.
func (p *Printer) Heading(format string, a ...any) {
	bold.Fprintf(p.out, format, a...)
	fmt.Fprintln(p.out)
}

// Error prints a titled error with optional suggestions and returns an error
// carrying the title, for commands that silence cobra's own error output.
func (p *Printer) Error(title, explanation string, suggestions ...string) error {
	red.Fprintf(p.out, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(p.out, "\n%s\n", explanation)
	}
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(p.out, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(p.out, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, s)
		}
	}
	return fmt.Errorf("%s", title)
}

// ClientStatus renders a client status badge.
func ClientStatus(s client.Status) string {
	switch s {
	case client.StatusActive:
		return green.Sprint(string(s))
	case client.StatusInactive:
		return faint.Sprint(string(s))
	default:
		return string(s)
	}
}

// ProjectStatus renders a project status badge.
func ProjectStatus(s project.Status) string {
	switch s {
	case project.StatusPlanning:
		return blue.Sprint(string(s))
	case project.StatusActive:
		return green.Sprint(string(s))
	case project.StatusOnHold:
		return yellow.Sprint(string(s))
	case project.StatusCompleted:
		return cyan.Sprint(string(s))
	default:
		return string(s)
	}
}
