package engine

import (
	"log/slog"
	"time"

	"github.com/viant/patternlint/analyzer"
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/source"
)

// AnalyzerFactory creates the analyzers of one run
type AnalyzerFactory func(cfg *config.Config, options ...analyzer.Option) []analyzer.Analyzer

type Option func(e *Engine)

// WithConfig sets analysis configuration
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.config = cfg
		}
	}
}

// WithLogger sets engine and analyzer logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithJobs sets the number of files loaded and parsed concurrently
func WithJobs(jobs int) Option {
	return func(e *Engine) {
		e.jobs = jobs
	}
}

// WithScanner sets source scanner
func WithScanner(scanner *source.Scanner) Option {
	return func(e *Engine) {
		e.scanner = scanner
	}
}

// WithAnalyzers overrides the analyzers created for each run
func WithAnalyzers(factory AnalyzerFactory) Option {
	return func(e *Engine) {
		e.analyzers = factory
	}
}

// WithSkipSyntaxErrors skips files the parser had to recover from
func WithSkipSyntaxErrors(skip bool) Option {
	return func(e *Engine) {
		e.skipSyntaxErrors = skip
	}
}

// WithClock sets issue detection clock
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithMaxErrors stops the run once max files were skipped or faulted, 0 means unlimited
func WithMaxErrors(max int) Option {
	return func(e *Engine) {
		e.maxErrors = max
	}
}

// WithProgress sets a callback invoked after each file
func WithProgress(progress func(progress Progress)) Option {
	return func(e *Engine) {
		e.progress = progress
	}
}
