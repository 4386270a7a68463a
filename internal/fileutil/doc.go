// Package fileutil provides directory tree scanning for recursive search.
//
// The scanner walks a directory depth-first, yields every regular file at
// every depth in sorted (deterministic) order, and collects non-fatal
// errors (e.g., permission denied on a subdirectory) without aborting the
// scan. Excluding named directories and skipping hidden directories are
// opt-in filters. Symbolic link cycles are guarded against by
// never following directory links and tracking visited directory identities.
//
// The package uses only the standard library (os, path/filepath, sort,
// strings) with no external dependencies.
package fileutil
