// Package source resolves command-line path arguments into readable text
// sources: standard input when no paths are given, individual files, or
// every regular file under a directory tree when recursion is enabled.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gerlacdt/minigrep/internal/fileutil"
)

// StdinName is the display name for the standard-input source
const StdinName = "<stdin>"

// ErrIsDirectory reports a directory argument given without the
// recursive flag. Callers can match it to suggest the fix.
var ErrIsDirectory = errors.New("is a directory")

// Options configure how path arguments are resolved
type Options struct {
	// Recursive walks directory arguments instead of rejecting them
	Recursive bool
	// ExcludeDirs are directory names skipped during recursive walks
	ExcludeDirs []string
	// SkipHidden skips dot-directories during recursive walks
	SkipHidden bool
}

// TextSource is one logical stream of text lines tagged with a display
// name. The underlying handle is opened lazily via Open, one source at a
// time, so resolving a large tree does not hold open file descriptors.
type TextSource struct {
	// Name is the display name used in output prefixes and error messages
	Name string

	open func() (io.ReadCloser, error)
}

// Open acquires the underlying reader. The caller owns the returned
// ReadCloser and must close it on every exit path.
func (s TextSource) Open() (io.ReadCloser, error) {
	return s.open()
}

// Resolve maps path arguments to text sources.
//
// With no paths it yields a single source reading stdin. Without the
// recursive flag each path must be a regular file; a directory is an
// error for that path. With the recursive flag directories are walked
// depth-first in deterministic order and every contained regular file
// becomes a source.
//
// Per-path failures (missing file, directory without the recursive flag,
// unreadable subtree entries) are collected and returned alongside the
// sources that did resolve; they do not abort resolution of the
// remaining paths.
func Resolve(paths []string, opts Options, stdin io.Reader) ([]TextSource, []error) {
	if len(paths) == 0 {
		return []TextSource{stdinSource(stdin)}, nil
	}

	var sources []TextSource
	var errs []error

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("cannot access %s: %w", path, err))
			continue
		}

		if !info.IsDir() {
			sources = append(sources, fileSource(path))
			continue
		}

		if !opts.Recursive {
			errs = append(errs, fmt.Errorf("%s %w", path, ErrIsDirectory))
			continue
		}

		result, err := fileutil.ScanDirectory(path, fileutil.ScanOptions{
			ExcludeDirs: opts.ExcludeDirs,
			SkipHidden:  opts.SkipHidden,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("cannot walk %s: %w", path, err))
			continue
		}
		errs = append(errs, result.Errors...)
		for _, file := range result.Files {
			sources = append(sources, fileSource(file))
		}
	}

	return sources, errs
}

func stdinSource(stdin io.Reader) TextSource {
	return TextSource{
		Name: StdinName,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(stdin), nil
		},
	}
}

func fileSource(path string) TextSource {
	return TextSource{
		Name: path,
		open: func() (io.ReadCloser, error) {
			// os.Open's PathError already names the path
			return os.Open(path)
		},
	}
}
