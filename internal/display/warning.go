package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message, written to the error
// stream so it never interleaves with match output on stdout.
type Warning struct {
	Title      string // Main warning text
	Suggestion string // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("minigrep: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Suggestion != "" {
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}
