package analyzer

import (
	"log/slog"

	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/detector"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
)

// Analyzer detects issues of one concern in parsed files.
// An instance keeps cross file state, use one instance per run and feed files in a stable order.
type Analyzer interface {
	// Name returns analyzer name, reported as issue detectedBy
	Name() string
	// Categories returns file categories the analyzer applies to
	Categories() []source.Category
	// Analyze returns issues detected in file, in detection order
	Analyze(file *source.File) ([]issue.Issue, error)
}

// Applies returns true if analyzer handles files of category
func Applies(analyzer Analyzer, category source.Category) bool {
	for _, candidate := range analyzer.Categories() {
		if candidate == category {
			return true
		}
	}
	return false
}

// NewAll creates auth, persistence and error handling analyzers
func NewAll(cfg *config.Config, options ...Option) []Analyzer {
	return []Analyzer{
		NewAuth(cfg, options...),
		NewPersistence(cfg, options...),
		NewErrorHandling(cfg, options...),
	}
}

// step produces issues for a file; steps run in declaration order
type step func(ctx *detector.Context) ([]issue.Issue, error)

// base holds state shared by all analyzers
type base struct {
	name           string
	categories     []source.Category
	config         *config.Config
	domain         *detector.Domain
	factory        *issue.Factory
	logging        *detector.Matcher
	transforms     *detector.Matcher
	logger         *slog.Logger
	factoryOptions []issue.FactoryOption
}

// newBase creates shared analyzer state, cfg is expected to be normalized
func newBase(name string, cfg *config.Config, domain *detector.Domain, categories []source.Category, options []Option) *base {
	ret := &base{
		name:       name,
		categories: categories,
		config:     cfg,
		domain:     domain,
		logging:    detector.NewMatcher(cfg.Vocabulary.LoggingCalls...),
		transforms: detector.NewMatcher(cfg.Vocabulary.TransformCalls...),
		logger:     slog.New(slog.DiscardHandler),
	}
	if cfg.SnippetLength > 0 {
		ret.factoryOptions = append(ret.factoryOptions, issue.WithSnippetSize(cfg.SnippetLength))
	}
	for _, option := range options {
		option(ret)
	}
	ret.factory = issue.NewFactory(name, ret.factoryOptions...)
	return ret
}

// Name returns analyzer name
func (b *base) Name() string {
	return b.name
}

// Categories returns applicable file categories
func (b *base) Categories() []source.Category {
	return b.categories
}

func (b *base) context(file *source.File) *detector.Context {
	return &detector.Context{
		File:       file,
		Factory:    b.factory,
		Domain:     b.domain,
		Thresholds: b.config.Thresholds,
		Logging:    b.logging,
		Transforms: b.transforms,
	}
}

// run runs steps in order and concatenates their issues
func (b *base) run(ctx *detector.Context, steps ...step) ([]issue.Issue, error) {
	var result []issue.Issue
	for _, run := range steps {
		issues, err := run(ctx)
		if err != nil {
			return nil, err
		}
		result = append(result, issues...)
	}
	b.logger.Debug("analyzed", "analyzer", b.name, "file", ctx.Path(), "issues", len(result))
	return result, nil
}

// one adapts a single issue detector to a step
func one(detect func(ctx *detector.Context) (*issue.Issue, error)) step {
	return func(ctx *detector.Context) ([]issue.Issue, error) {
		created, err := detect(ctx)
		if err != nil || created == nil {
			return nil, err
		}
		return []issue.Issue{*created}, nil
	}
}

// over binds file operations to an operation detector
func over(operations []detector.Operation, detect func(ctx *detector.Context, operations []detector.Operation) ([]issue.Issue, error)) step {
	return func(ctx *detector.Context) ([]issue.Issue, error) {
		return detect(ctx, operations)
	}
}

func overOne(operations []detector.Operation, detect func(ctx *detector.Context, operations []detector.Operation) (*issue.Issue, error)) step {
	return one(func(ctx *detector.Context) (*issue.Issue, error) {
		return detect(ctx, operations)
	})
}
