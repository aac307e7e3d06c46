package analyzer

import (
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/detector"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

// ErrorHandlingName is the error handling analyzer name
const ErrorHandlingName = "error-handling-pattern"

var responseDivergence = &detector.Divergence{
	Concern:        "error response format across API routes",
	Variants:       "formats",
	Severity:       issue.Medium,
	Effort:         issue.EffortMedium,
	Recommendation: "Standardize error response format across all API routes. Consider creating a shared error response utility function to ensure consistency.",
	Tags:           []string{"api-routes", "consistency"},
}

// ErrorHandling detects error handling issues: swallowed, rethrown or missing handlers, unchecked errors,
// unguarded async functions, divergent endpoint error responses and handlers lagging behind run-wide
// logging, recovery and typed error adoption
type ErrorHandling struct {
	*base
	risky     *detector.Matcher
	responses *variant.Accumulator[string]
	logged    *variant.Trend
	recovered *variant.Trend
	typed     *variant.Trend
}

// NewErrorHandling creates error handling analyzer
func NewErrorHandling(cfg *config.Config, options ...Option) *ErrorHandling {
	cfg = config.Normalized(cfg)
	return &ErrorHandling{
		base: newBase(ErrorHandlingName, cfg, detector.NewErrorHandlingDomain(),
			[]source.Category{source.Endpoint, source.Service, source.Utility, source.Middleware}, options),
		risky:     detector.NewMatcher(cfg.Vocabulary.RiskyCalls...),
		responses: variant.New("error-response", detector.ErrorResponseShape()),
		logged:    variant.NewTrend("error-logging"),
		recovered: variant.NewTrend("error-recovery"),
		typed:     variant.NewTrend("typed-errors"),
	}
}

// Analyze analyzes file
func (e *ErrorHandling) Analyze(file *source.File) ([]issue.Issue, error) {
	handlers := detector.Handlers(file.Root())
	steps := []step{
		overHandlers(handlers, detector.EmptyHandler),
		overHandlers(handlers, detector.RethrowWithoutContext),
		func(ctx *detector.Context) ([]issue.Issue, error) {
			return detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindTry), detector.TryWithoutCatch)
		},
		func(ctx *detector.Context) ([]issue.Issue, error) {
			return detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindVariableDeclarator), detector.UncheckedErrorBinding)
		},
		func(ctx *detector.Context) ([]issue.Issue, error) {
			return detector.Each(ctx, tree.Functions(ctx.Root()), detector.UncheckedErrorCallback)
		},
		e.unhandledAsync,
	}
	if file.Category() == source.Endpoint {
		steps = append(steps, record(e.responses, responseDivergence, isReturn))
	}
	steps = append(steps,
		one(func(ctx *detector.Context) (*issue.Issue, error) {
			return detector.LoggingAdoption(ctx, e.logged, handlers)
		}),
		one(func(ctx *detector.Context) (*issue.Issue, error) {
			return detector.RecoveryAdoption(ctx, e.recovered, handlers, e.config.Vocabulary.RecoveryKeywords)
		}),
		one(func(ctx *detector.Context) (*issue.Issue, error) {
			return detector.TypedErrorAdoption(ctx, e.typed, handlers)
		}),
	)
	return e.run(e.context(file), steps...)
}

func (e *ErrorHandling) unhandledAsync(ctx *detector.Context) ([]issue.Issue, error) {
	return detector.Each(ctx, tree.Functions(ctx.Root()), func(ctx *detector.Context, fn tree.Node) (*issue.Issue, error) {
		return detector.UnhandledAsync(ctx, e.risky, fn)
	})
}

func overHandlers(handlers []detector.Handler, detect func(ctx *detector.Context, handler detector.Handler) (*issue.Issue, error)) step {
	return func(ctx *detector.Context) ([]issue.Issue, error) {
		var result []issue.Issue
		for _, handler := range handlers {
			created, err := detect(ctx, handler)
			if err != nil {
				return result, err
			}
			if created != nil {
				result = append(result, *created)
			}
		}
		return result, nil
	}
}

func isReturn(n tree.Node) bool {
	return n.Kind() == tree.KindReturn
}
