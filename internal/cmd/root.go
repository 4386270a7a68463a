package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gerlacdt/minigrep/internal/config"
	"github.com/gerlacdt/minigrep/internal/logger"
	"github.com/gerlacdt/minigrep/internal/search"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// rootFlags collects every CLI flag before it is merged with the config
// file into a search.Config.
type rootFlags struct {
	query         string
	insensitive   bool
	recursive     bool
	colorize      bool
	lineNumbers   bool
	withFilenames bool
	invert        bool
	fixedStrings  bool
	count         bool
	after         int
	before        int
	context       int
	excludeDirs   []string
	skipHidden    bool
	verbose       bool
	configFile    string
}

// NewRootCommand creates and returns the root cobra command for minigrep
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "minigrep [paths...]",
		Short: "Search files, directories, or stdin with regular expressions",
		Long: `minigrep scans input line by line and prints every line matching a
regular expression, with optional line numbers, filename prefixes, and
colorized match highlighting.

With no path arguments input is read from stdin. Directories require
--recursive and are walked depth-first in deterministic order, visiting
every regular file at every depth; --exclude-dir and --skip-hidden
narrow the walk.

Defaults can be placed in .minigrep.yaml (color mode, excluded
directories, log level); CLI flags always override the file.

Examples:
  # Search stdin
  cat access.log | minigrep -q 'GET /api'

  # Search files with line numbers and highlighting
  minigrep -q 'TODO' -n -c main.go util.go

  # Recursive, case-insensitive search over a tree
  minigrep -q 'deprecated' -i -r -H src/

  # Count non-matching lines per file
  minigrep -q '^#' -v --count config-a.ini config-b.ini

Exit code: 0 on a clean run (even with zero matches), 1 if the pattern is
invalid or any source could not be searched.`,
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, flags)
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "regular expression to search for (required)")
	cmd.Flags().BoolVarP(&flags.insensitive, "insensitive", "i", false, "case-insensitive matching")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "walk directory arguments")
	cmd.Flags().BoolVarP(&flags.colorize, "color", "c", false, "colorize matched spans (overrides config color mode)")
	cmd.Flags().BoolVarP(&flags.lineNumbers, "line-numbers", "n", false, "prefix each match with its 1-based line number")
	cmd.Flags().BoolVarP(&flags.withFilenames, "with-filenames", "H", false, "prefix each match with its source name")
	cmd.Flags().BoolVarP(&flags.invert, "invert", "v", false, "select lines that do not match")
	cmd.Flags().BoolVarP(&flags.fixedStrings, "fixed-strings", "F", false, "treat the query as a literal string")
	cmd.Flags().BoolVar(&flags.count, "count", false, "print per-source match counts instead of lines")
	cmd.Flags().IntVarP(&flags.after, "after", "A", 0, "print N lines of trailing context")
	cmd.Flags().IntVarP(&flags.before, "before", "B", 0, "print N lines of leading context")
	cmd.Flags().IntVarP(&flags.context, "context", "C", 0, "print N lines of leading and trailing context")
	cmd.Flags().StringSliceVar(&flags.excludeDirs, "exclude-dir", nil, "directory names to skip when recursing (default: none)")
	cmd.Flags().BoolVar(&flags.skipHidden, "skip-hidden", false, "skip dot-directories when recursing")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "enable debug diagnostics on stderr")
	cmd.Flags().StringVar(&flags.configFile, "config", config.DefaultConfigFile, "path to the optional config file")

	_ = cmd.MarkFlagRequired("query")

	return cmd
}

// runSearch merges flags with the config file, runs the engine, and maps
// per-source failures to a non-zero exit status.
func runSearch(cmd *cobra.Command, args []string, flags *rootFlags) error {
	cfg, err := config.LoadConfig(flags.configFile)
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if flags.verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	before, after := flags.before, flags.after
	if flags.context > 0 {
		before, after = flags.context, flags.context
	}

	searchCfg := search.Config{
		Query:           flags.query,
		Insensitive:     flags.insensitive,
		FixedString:     flags.fixedStrings,
		Invert:          flags.invert,
		Recursive:       flags.recursive,
		ShowLineNumbers: flags.lineNumbers,
		ShowFilenames:   flags.withFilenames,
		Colorize:        resolveColor(cfg.Color, flags.colorize, cmd.OutOrStdout()),
		Count:           flags.count,
		Before:          before,
		After:           after,
		ExcludeDirs:     append(cfg.ExcludeDirs, flags.excludeDirs...),
		SkipHidden:      flags.skipHidden || cfg.SkipHidden,
		Paths:           args,
	}

	engine := search.NewEngine(searchCfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), log)
	summary, err := engine.Run()
	if err != nil {
		return err
	}

	if n := len(summary.SourceErrors); n > 0 {
		return fmt.Errorf("%d source(s) could not be searched", n)
	}
	return nil
}

// resolveColor decides whether output should be colorized: the -c flag
// forces color on, otherwise the config file's mode applies, with "auto"
// consulting the terminal state of the actual output stream.
func resolveColor(mode string, forced bool, out io.Writer) bool {
	if forced {
		return true
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	// auto
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
