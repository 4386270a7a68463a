package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// ExcludeDirs is a list of directory names to skip (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the paths of all regular files found, sorted
	Files []string
	// Errors contains any non-fatal errors encountered during scanning
	Errors []error
}

// ScanDirectory walks a directory tree and collects every regular file.
//
// The walk is depth-first and the returned list is sorted, so output is
// deterministic across runs on an unchanged tree. By default every
// regular file at every depth is yielded; directories named in
// opts.ExcludeDirs are skipped, and hidden directories only when
// opts.SkipHidden is set. Entries that fail to stat are collected as
// non-fatal errors and the walk continues.
//
// filepath.WalkDir does not follow symbolic links to directories, and a
// visited set keyed on resolved paths guards against re-entering a tree
// reached through a link, so adversarial link cycles terminate.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	visited := make(map[string]bool)

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if d.IsDir() {
			// Never skip the root itself, even if hidden (e.g. ".")
			if path == dir {
				visited[canonical(path)] = true
				return nil
			}

			if excludeMap[d.Name()] || (opts.SkipHidden && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}

			resolved := canonical(path)
			if visited[resolved] {
				return filepath.SkipDir
			}
			visited[resolved] = true
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// canonical resolves symlinks so the same physical directory always maps
// to one key. Falls back to the literal path when resolution fails.
func canonical(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
