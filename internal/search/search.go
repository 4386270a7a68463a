// Package search wires the pipeline together: resolve the input sources,
// scan each one against the compiled pattern, and render the results.
// Execution is sequential and single-threaded; the only state is the
// immutable Config and the running Summary counters.
package search

import (
	"errors"
	"fmt"
	"io"

	"github.com/gerlacdt/minigrep/internal/display"
	"github.com/gerlacdt/minigrep/internal/logger"
	"github.com/gerlacdt/minigrep/internal/matcher"
	"github.com/gerlacdt/minigrep/internal/source"
)

// Config holds every setting for one search run. It is constructed once
// per invocation and never mutated afterwards.
type Config struct {
	// Query is the search expression
	Query string
	// Insensitive enables case-insensitive matching
	Insensitive bool
	// FixedString treats Query as a literal substring
	FixedString bool
	// Invert selects non-matching lines
	Invert bool
	// Recursive walks directory arguments
	Recursive bool
	// ShowLineNumbers prefixes matches with their 1-based line number
	ShowLineNumbers bool
	// ShowFilenames prefixes matches with their source name
	ShowFilenames bool
	// Colorize highlights matched spans
	Colorize bool
	// Count prints per-source match counts instead of lines
	Count bool
	// Before and After are the context line counts
	Before int
	After  int
	// ExcludeDirs are directory names skipped during recursive walks.
	// Empty means every directory is visited.
	ExcludeDirs []string
	// SkipHidden skips dot-directories during recursive walks
	SkipHidden bool
	// Paths are the positional path arguments; empty means stdin
	Paths []string
}

// Summary reports what a run did. SourceErrors holds every per-source
// failure that was recovered; any entry makes the final exit status
// non-zero even though the run completed.
type Summary struct {
	// Sources is the number of sources scanned to completion
	Sources int
	// Matches is the total number of matching lines across all sources
	Matches int
	// SourceErrors are the recovered per-source failures, in order
	SourceErrors []error
}

// Engine executes searches. Matches go to out, warnings to errOut.
type Engine struct {
	cfg    Config
	out    io.Writer
	errOut io.Writer
	stdin  io.Reader
	log    *logger.ConsoleLogger
}

// NewEngine creates an Engine. stdin is only read when cfg.Paths is
// empty. A nil log discards diagnostics.
func NewEngine(cfg Config, out, errOut io.Writer, stdin io.Reader, log *logger.ConsoleLogger) *Engine {
	if log == nil {
		log = logger.NewConsoleLogger(nil, "")
	}
	return &Engine{
		cfg:    cfg,
		out:    out,
		errOut: errOut,
		stdin:  stdin,
		log:    log,
	}
}

// Run performs the search. The returned error is fatal (nothing was
// searched): an invalid pattern. Per-source failures are reported to
// errOut as they happen, recovered, and collected in the Summary.
func (e *Engine) Run() (*Summary, error) {
	// Compile exactly once per invocation, before touching any input
	pattern, err := matcher.Compile(e.cfg.Query, matcher.Options{
		Insensitive: e.cfg.Insensitive,
		FixedString: e.cfg.FixedString,
		Invert:      e.cfg.Invert,
		Before:      e.cfg.Before,
		After:       e.cfg.After,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{}

	sources, resolveErrs := source.Resolve(e.cfg.Paths, source.Options{
		Recursive:   e.cfg.Recursive,
		ExcludeDirs: e.cfg.ExcludeDirs,
		SkipHidden:  e.cfg.SkipHidden,
	}, e.stdin)
	for _, rerr := range resolveErrs {
		e.reportSourceError(summary, rerr)
	}
	e.log.LogDebug("resolved %d source(s)", len(sources))

	formatter := display.NewFormatter(e.cfg.ShowLineNumbers, e.cfg.ShowFilenames, e.cfg.Colorize)

	for _, src := range sources {
		if err := e.searchSource(src, pattern, formatter, summary); err != nil {
			e.reportSourceError(summary, err)
			continue
		}
		summary.Sources++
	}

	e.log.LogDebug("searched %d source(s), %d matching line(s), %d error(s)",
		summary.Sources, summary.Matches, len(summary.SourceErrors))
	return summary, nil
}

// searchSource scans one source to completion. The handle is opened
// immediately before the first read and closed on every exit path.
func (e *Engine) searchSource(src source.TextSource, pattern *matcher.Pattern, formatter *display.Formatter, summary *Summary) error {
	rc, err := src.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	e.log.LogTrace("scanning %s", src.Name)

	count := 0
	err = pattern.Scan(src.Name, rc, func(rec matcher.Record) error {
		if !rec.Context {
			count++
		}
		if e.cfg.Count {
			return nil
		}
		if _, werr := fmt.Fprintln(e.out, formatter.Format(rec)); werr != nil {
			return werr
		}
		return nil
	})
	if err != nil {
		return err
	}

	summary.Matches += count

	if e.cfg.Count {
		if e.cfg.ShowFilenames {
			fmt.Fprintf(e.out, "%s:%d\n", src.Name, count)
		} else {
			fmt.Fprintf(e.out, "%d\n", count)
		}
	}
	return nil
}

// reportSourceError surfaces a recovered failure without stopping the
// run. The warning is the single user-facing report; the logger only
// repeats it at debug level for --verbose runs.
func (e *Engine) reportSourceError(summary *Summary, err error) {
	summary.SourceErrors = append(summary.SourceErrors, err)
	e.log.LogDebug("recovered: %v", err)

	warning := display.Warning{Title: err.Error()}
	if errors.Is(err, source.ErrIsDirectory) {
		warning.Suggestion = "use --recursive to search directories"
	}
	warning.Display(e.errOut)
}
