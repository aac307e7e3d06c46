package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/engine"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <directory|url>",
	Short: "Analyze TypeScript and JavaScript sources under a directory",
	Long:  `Analyze discovers sources under the location, parses them in parallel, runs the auth, database and error handling analyzers in relative path order and writes a report.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "text", "output format (text|json|yaml|msgpack)")
	analyzeCmd.Flags().StringP("config", "c", "", "config file (.yaml|.yml|.toml)")
	analyzeCmd.Flags().StringP("output", "o", "", "write report to a file or storage URL instead of stdout")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel parse workers (0=config or auto)")
	analyzeCmd.Flags().Bool("skip-syntax-errors", false, "skip files the parser had to recover from")
	analyzeCmd.Flags().Int("max-errors", 0, "stop after this many skipped or failed files (0=unlimited)")
	analyzeCmd.Flags().String("fail-on", "none", "exit with status 1 when an issue at or above severity is found (critical|high|medium|low|none)")
	analyzeCmd.Flags().StringSlice("include", nil, "only analyze relative paths matching the glob")
	analyzeCmd.Flags().StringSlice("exclude", nil, "skip relative paths matching the glob")
}

// runAnalyze executes the analyze command, the report is written even when the run stopped early
func runAnalyze(cmd *cobra.Command, args []string) error {
	location := args[0]

	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	configURL, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	skipSyntaxErrors, err := cmd.Flags().GetBool("skip-syntax-errors")
	if err != nil {
		return fmt.Errorf("failed to get skip-syntax-errors flag: %w", err)
	}

	maxErrors, err := cmd.Flags().GetInt("max-errors")
	if err != nil {
		return fmt.Errorf("failed to get max-errors flag: %w", err)
	}

	failOnName, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	failOn, err := parseFailOn(failOnName)
	if err != nil {
		return err
	}

	include, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return fmt.Errorf("failed to get include flag: %w", err)
	}

	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return fmt.Errorf("failed to get exclude flag: %w", err)
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := config.Default()
	if configURL != "" {
		if cfg, err = config.Load(ctx, configURL); err != nil {
			return err
		}
	}
	cfg.Scan.Include = append(cfg.Scan.Include, include...)
	cfg.Scan.Exclude = append(cfg.Scan.Exclude, exclude...)

	if !strings.Contains(location, "://") {
		if location, err = filepath.Abs(location); err != nil {
			return fmt.Errorf("failed to resolve %v: %w", args[0], err)
		}
	}

	runner := engine.New(
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithJobs(jobs),
		engine.WithSkipSyntaxErrors(skipSyntaxErrors),
		engine.WithMaxErrors(maxErrors),
	)
	result, runErr := runner.RunDir(ctx, location)
	if result == nil {
		return runErr
	}

	var options []report.Option
	if output == "" {
		colored, err := colorEnabled(colorMode, os.Stdout)
		if err != nil {
			return err
		}
		options = append(options, report.WithColor(colored), report.WithWidth(terminalWidth(os.Stdout)))
	}
	writer, err := report.New(format, options...)
	if err != nil {
		return err
	}
	if err = writeReport(ctx, writer, result, output); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if exceeds(result.Issues, failOn) {
		return errIssuesFound
	}
	return nil
}

// writeReport writes the report to stdout or uploads it to output URL
func writeReport(ctx context.Context, writer report.Writer, result *engine.Result, output string) error {
	if output == "" {
		return writer.Write(os.Stdout, result)
	}
	buffer := &bytes.Buffer{}
	if err := writer.Write(buffer, result); err != nil {
		return err
	}
	if err := afs.New().Upload(ctx, output, 0o644, buffer); err != nil {
		return fmt.Errorf("failed to write report %v: %w", output, err)
	}
	return nil
}

// parseFailOn parses --fail-on, an empty severity disables the check
func parseFailOn(name string) (issue.Severity, error) {
	severity := issue.Severity(strings.ToLower(strings.TrimSpace(name)))
	switch severity {
	case "none", "":
		return "", nil
	case issue.Critical, issue.High, issue.Medium, issue.Low:
		return severity, nil
	}
	return "", fmt.Errorf("unknown fail-on severity %q", name)
}

// exceeds returns true if any issue is at least as severe as threshold
func exceeds(issues []issue.Issue, threshold issue.Severity) bool {
	if threshold == "" {
		return false
	}
	for _, item := range issues {
		if item.Severity.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}
