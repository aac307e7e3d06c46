package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version can be overridden at build time via -ldflags
var Version = "0.1.0-dev"

// errIssuesFound signals issues at or above the --fail-on severity
var errIssuesFound = errors.New("issues found")

var rootCmd = &cobra.Command{
	Use:           "patternlint",
	Short:         "Detect inconsistent patterns and anti-patterns in TypeScript codebases",
	Long:          `patternlint scans a TypeScript or JavaScript codebase and reports concerns solved in more than one way across files, together with per-file anti-patterns such as missing error handling, pass-through wrappers, injection prone calls and layering violations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errIssuesFound) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "patternlint: %v\n", err)
		os.Exit(2)
	}
}

// newLogger creates a stderr text logger, --verbose switches to debug level
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// colorEnabled resolves --color against the output terminal
func colorEnabled(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(mode) {
	case "on", "always", "true":
		return true, nil
	case "off", "never", "false":
		return false, nil
	case "auto", "":
		return f != nil && isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("unknown color mode %q, expected auto, on or off", mode)
}

// isTerminal checks whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns f width or 0 when f is not a terminal
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
