package matcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrEncoding reports a source whose content is not valid UTF-8 text.
// It aborts scanning of that source only; callers decide whether the
// remaining sources continue.
var ErrEncoding = errors.New("input is not valid UTF-8 text")

// maxLineSize bounds a single line (1 MiB); longer lines abort the source
// with a read error rather than silently truncating.
const maxLineSize = 1024 * 1024

// Span is a half-open byte-offset range [Start, End) within a line
// identifying one match.
type Span struct {
	Start int
	End   int
}

// Record describes one output line produced by a scan: a matching line
// with its spans, or a context line around a match (no spans).
type Record struct {
	// Source is the display name of the originating source
	Source string
	// LineNum is the 1-based line number within the source
	LineNum int
	// Line is the line text without its terminator
	Line string
	// Spans are the non-overlapping match ranges, ascending by start.
	// Empty for context lines and inverted matches.
	Spans []Span
	// Context marks a non-matching line emitted for -A/-B/-C
	Context bool
}

// Options control how a pattern is compiled and how lines are selected
type Options struct {
	// Insensitive enables case-insensitive matching
	Insensitive bool
	// FixedString treats the expression as a literal substring
	FixedString bool
	// Invert selects lines that do NOT match
	Invert bool
	// Before is the number of leading context lines per match
	Before int
	// After is the number of trailing context lines per match
	After int
}

// Pattern is a compiled search expression. Compile once per invocation;
// a Pattern is safe to reuse across sources.
type Pattern struct {
	re   *regexp.Regexp
	opts Options
}

// Compile builds a Pattern from a regular expression. Case sensitivity is
// a compile-time property of the pattern, not a per-scan setting.
func Compile(expr string, opts Options) (*Pattern, error) {
	src := expr
	if opts.FixedString {
		src = regexp.QuoteMeta(src)
	}
	if opts.Insensitive {
		src = "(?i)" + src
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}

	return &Pattern{re: re, opts: opts}, nil
}

// Scan reads r line by line and calls emit for every selected Record, in
// order. Lines are split on LF; a trailing CR is stripped so CRLF input
// behaves identically. The sequence is finite and not restartable.
//
// A line containing invalid UTF-8 (or a NUL byte) aborts the scan with an
// error wrapping ErrEncoding. An emit error aborts the scan and is
// returned as-is.
func (p *Pattern) Scan(name string, r io.Reader, emit func(Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	lastEmitted := 0
	afterLeft := 0
	var pending []Record // ring of candidate before-context lines

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if !utf8.ValidString(line) || strings.IndexByte(line, 0) >= 0 {
			return fmt.Errorf("%s: line %d: %w", name, lineNum, ErrEncoding)
		}

		matched, spans := p.selectLine(line)
		if matched {
			// Flush buffered before-context first, oldest to newest
			for _, rec := range pending {
				if rec.LineNum > lastEmitted {
					if err := emit(rec); err != nil {
						return err
					}
					lastEmitted = rec.LineNum
				}
			}
			pending = pending[:0]

			if err := emit(Record{Source: name, LineNum: lineNum, Line: line, Spans: spans}); err != nil {
				return err
			}
			lastEmitted = lineNum
			afterLeft = p.opts.After
			continue
		}

		if afterLeft > 0 {
			afterLeft--
			if err := emit(Record{Source: name, LineNum: lineNum, Line: line, Context: true}); err != nil {
				return err
			}
			lastEmitted = lineNum
			continue
		}

		if p.opts.Before > 0 {
			pending = append(pending, Record{Source: name, LineNum: lineNum, Line: line, Context: true})
			if len(pending) > p.opts.Before {
				pending = pending[1:]
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// selectLine reports whether a line is selected and, for plain matches,
// the spans of every non-overlapping match on it.
func (p *Pattern) selectLine(line string) (bool, []Span) {
	idx := p.re.FindAllStringIndex(line, -1)
	if p.opts.Invert {
		// Inverted selection has nothing to highlight
		return idx == nil, nil
	}
	if idx == nil {
		return false, nil
	}

	spans := make([]Span, len(idx))
	for i, pair := range idx {
		spans[i] = Span{Start: pair[0], End: pair[1]}
	}
	return true, spans
}
