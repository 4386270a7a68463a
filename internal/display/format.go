package display

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/gerlacdt/minigrep/internal/matcher"
)

// Formatter renders match records as output lines. It is a pure,
// stateless per-record transformation; one Formatter serves a whole run.
type Formatter struct {
	// ShowLineNumbers prefixes each line with its 1-based line number
	ShowLineNumbers bool
	// ShowFilenames prefixes each line with its source display name
	ShowFilenames bool
	// Colorize wraps matched spans in terminal escape sequences
	Colorize bool

	highlight *color.Color
}

// NewFormatter creates a Formatter for the given display configuration.
// When colorize is set, escape sequences are emitted unconditionally
// (the caller has already decided the destination supports them).
func NewFormatter(showLineNumbers, showFilenames, colorize bool) *Formatter {
	highlight := color.New(color.FgRed, color.Bold)
	if colorize {
		highlight.EnableColor()
	}

	return &Formatter{
		ShowLineNumbers: showLineNumbers,
		ShowFilenames:   showFilenames,
		Colorize:        colorize,
		highlight:       highlight,
	}
}

// Format renders one record: filename segment, then line-number segment,
// then the line text, each segment present only if its flag is enabled.
// Matching lines use ":" separators; context lines use "-".
func (f *Formatter) Format(rec matcher.Record) string {
	sep := ":"
	if rec.Context {
		sep = "-"
	}

	var b strings.Builder
	if f.ShowFilenames {
		b.WriteString(rec.Source)
		b.WriteString(sep)
	}
	if f.ShowLineNumbers {
		b.WriteString(strconv.Itoa(rec.LineNum))
		b.WriteString(sep)
	}

	if f.Colorize && len(rec.Spans) > 0 {
		b.WriteString(f.highlightSpans(rec.Line, rec.Spans))
	} else {
		b.WriteString(rec.Line)
	}
	return b.String()
}

// highlightSpans wraps each span in color escapes. Spans are applied
// back-to-front so inserting escape codes does not shift the offsets of
// spans not yet processed.
func (f *Formatter) highlightSpans(line string, spans []matcher.Span) string {
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		line = line[:s.Start] + f.highlight.Sprint(line[s.Start:s.End]) + line[s.End:]
	}
	return line
}
