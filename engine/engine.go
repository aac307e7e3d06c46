package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/patternlint/analyzer"
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates a corpus scan: files are loaded and parsed concurrently,
// then analyzed strictly in input order by a fresh set of analyzers
type Engine struct {
	config           *config.Config
	scanner          *source.Scanner
	logger           *slog.Logger
	jobs             int
	skipSyntaxErrors bool
	maxErrors        int
	clock            func() time.Time
	progress         func(progress Progress)
	analyzers        AnalyzerFactory
}

// Progress reports analysis advance after each file
type Progress struct {
	Current int
	Total   int
	File    string
	Issues  int
	Elapsed time.Duration
}

// New creates an engine
func New(options ...Option) *Engine {
	ret := &Engine{
		config:    config.Default(),
		logger:    slog.New(slog.DiscardHandler),
		analyzers: analyzer.NewAll,
	}
	for _, option := range options {
		option(ret)
	}
	ret.config = config.Normalized(ret.config)
	if ret.jobs <= 0 {
		ret.jobs = ret.config.Jobs
	}
	if ret.jobs <= 0 {
		ret.jobs = runtime.GOMAXPROCS(0)
	}
	if !ret.skipSyntaxErrors {
		ret.skipSyntaxErrors = ret.config.SkipSyntaxErrors
	}
	if ret.scanner == nil {
		ret.scanner = source.NewScanner(scannerOptions(&ret.config.Scan)...)
	}
	return ret
}

// RunDir discovers sources under rootURL and analyzes them in relative path order
func (e *Engine) RunDir(ctx context.Context, rootURL string) (*Result, error) {
	units, err := e.scanner.Discover(ctx, rootURL)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("discovered sources", "root", rootURL, "files", len(units))
	result, err := e.Run(ctx, units)
	if result != nil && url.Scheme(rootURL, "file") == "file" {
		if project, projectErr := source.DetectProject(url.Path(rootURL)); projectErr == nil {
			result.Project = project
		} else {
			e.logger.Debug("project not detected", "root", rootURL, "error", projectErr)
		}
	}
	return result, err
}

// Run loads, parses and analyzes units in order.
// Unreadable or unparsable files are skipped and analyzer failures are isolated to their file.
// On cancellation or when the error limit is reached the partial result is returned with the error.
func (e *Engine) Run(ctx context.Context, units []source.Unit) (*Result, error) {
	started := time.Now()
	files, reasons, err := e.parse(ctx, units)
	if err != nil {
		result := &Result{Files: len(units), Duration: time.Since(started)}
		return result, err
	}
	return e.analyze(ctx, started, units, files, reasons)
}

// Analyze analyzes already parsed files in order
func (e *Engine) Analyze(ctx context.Context, files []*source.File) (*Result, error) {
	units := make([]source.Unit, len(files))
	reasons := make([]error, len(files))
	for i, file := range files {
		units[i] = file.Unit
		if e.skipSyntaxErrors && file.Tree.HasError() {
			reasons[i] = syntaxError(file.Unit)
		}
	}
	return e.analyze(ctx, time.Now(), units, files, reasons)
}

func (e *Engine) analyze(ctx context.Context, started time.Time, units []source.Unit, files []*source.File, reasons []error) (*Result, error) {
	result := &Result{Files: len(units)}
	analyzers := e.analyzers(e.config, e.analyzerOptions()...)
	errorCount := 0
	for i, unit := range units {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(started)
			e.logger.Warn("analysis cancelled", "analyzed", result.Analyzed, "files", result.Files)
			return result, err
		}
		failures := len(result.Skipped) + len(result.Faults)
		if reasons[i] != nil {
			e.logger.Warn("skipping file", "file", unitPath(unit), "error", reasons[i])
			result.skip(unitPath(unit), reasons[i])
		} else {
			e.analyzeFile(result, analyzers, files[i])
		}
		if len(result.Skipped)+len(result.Faults) > failures {
			errorCount++
			if e.maxErrors > 0 && errorCount >= e.maxErrors {
				result.Duration = time.Since(started)
				return result, fmt.Errorf("%w: stopped after %v failed files, last %v", ErrTooManyErrors, errorCount, unitPath(unit))
			}
		}
		if e.progress != nil {
			e.progress(Progress{Current: i + 1, Total: len(units), File: unitPath(unit), Issues: len(result.Issues), Elapsed: time.Since(started)})
		}
	}
	result.Duration = time.Since(started)
	e.logger.Info("analysis completed", "files", result.Files, "analyzed", result.Analyzed,
		"issues", len(result.Issues), "skipped", len(result.Skipped), "faults", len(result.Faults), "duration", result.Duration)
	return result, nil
}

// analyzeFile runs applicable analyzers over file, failures are isolated to their analyzer
func (e *Engine) analyzeFile(result *Result, analyzers []analyzer.Analyzer, file *source.File) {
	result.Analyzed++
	for _, candidate := range analyzers {
		if !analyzer.Applies(candidate, file.Unit.Category) {
			continue
		}
		issues, err := e.runAnalyzer(candidate, file)
		if err != nil {
			e.logger.Error("analyzer failed", "analyzer", candidate.Name(), "file", file.Path(), "error", err)
			result.fault(file.Path(), candidate.Name(), err)
			continue
		}
		result.Issues = append(result.Issues, issues...)
	}
}

// runAnalyzer runs a single analyzer, a panic is converted into a fault
func (e *Engine) runAnalyzer(candidate analyzer.Analyzer, file *source.File) (issues []issue.Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			issues = nil
			err = fmt.Errorf("%w: %v panicked on %v: %v", ErrAnalyzerFault, candidate.Name(), file.Path(), r)
		}
	}()
	if issues, err = candidate.Analyze(file); err != nil {
		return nil, fmt.Errorf("%w: %v failed on %v: %w", ErrAnalyzerFault, candidate.Name(), file.Path(), err)
	}
	return issues, nil
}

// parse loads and parses units concurrently, results are indexed by unit position
func (e *Engine) parse(ctx context.Context, units []source.Unit) ([]*source.File, []error, error) {
	files := make([]*source.File, len(units))
	reasons := make([]error, len(units))
	if len(units) == 0 {
		return files, reasons, nil
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(min(e.jobs, len(units)))
	for i, unit := range units {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			files[i], reasons[i] = e.load(groupCtx, unit)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return files, reasons, nil
}

func (e *Engine) load(ctx context.Context, unit source.Unit) (*source.File, error) {
	data, err := e.scanner.Load(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	file, err := source.Parse(ctx, unit, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparsableFile, err)
	}
	if e.skipSyntaxErrors && file.Tree.HasError() {
		return nil, syntaxError(unit)
	}
	return file, nil
}

func (e *Engine) analyzerOptions() []analyzer.Option {
	options := []analyzer.Option{analyzer.WithLogger(e.logger)}
	if e.clock != nil {
		options = append(options, analyzer.WithClock(e.clock))
	}
	return options
}

func syntaxError(unit source.Unit) error {
	return fmt.Errorf("%w: %v contains syntax errors", ErrUnparsableFile, unitPath(unit))
}

func unitPath(unit source.Unit) string {
	if unit.RelativePath != "" {
		return unit.RelativePath
	}
	return unit.Path
}

func scannerOptions(scan *config.Scan) []source.ScannerOption {
	var options []source.ScannerOption
	if len(scan.Extensions) > 0 {
		options = append(options, source.WithExtensions(scan.Extensions...))
	}
	if len(scan.ExcludedDirs) > 0 {
		options = append(options, source.WithExcludedDirs(scan.ExcludedDirs...))
	}
	if len(scan.Include) > 0 {
		options = append(options, source.WithInclude(scan.Include...))
	}
	if len(scan.Exclude) > 0 {
		options = append(options, source.WithExclude(scan.Exclude...))
	}
	if scan.MaxDepth > 0 {
		options = append(options, source.WithMaxDepth(scan.MaxDepth))
	}
	return options
}
