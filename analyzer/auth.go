package analyzer

import (
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/detector"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

// AuthName is the auth analyzer name
const AuthName = "auth-pattern"

const roleLabel = "role"

var (
	authClientDivergence = &detector.Divergence{
		Concern:        "auth client instantiation pattern",
		Variants:       "patterns",
		Severity:       issue.Medium,
		Effort:         issue.EffortMedium,
		Recommendation: "Standardize auth client creation to use a single pattern across the codebase. Consider creating a centralized auth client factory function.",
		Tags:           []string{"client-instantiation"},
	}
	permissionDivergence = &detector.Divergence{
		Concern:        "permission checking approach",
		Variants:       "approaches",
		Severity:       issue.High,
		Effort:         issue.EffortMedium,
		Recommendation: "Standardize permission checking to use a single approach (either role-based, permission-based, or a custom unified approach). This improves maintainability and reduces security risks.",
		Tags:           []string{"permissions", "security"},
	}
	sessionDivergence = &detector.Divergence{
		Concern:        "session management",
		Variants:       "approaches",
		Severity:       issue.High,
		Effort:         issue.EffortLarge,
		Recommendation: "Standardize session management to use a single approach. Prefer the session management built into the auth provider over hand-rolled cookies or tokens.",
		Tags:           []string{"session", "security"},
	}
)

// Auth detects authentication pattern issues: divergent client, permission and session styles,
// redundant middleware, pass-through auth wrappers and unhandled auth calls
type Auth struct {
	*base
	clients     *variant.Accumulator[string]
	permissions *variant.Accumulator[string]
	sessions    *variant.Accumulator[string]
}

// NewAuth creates auth analyzer
func NewAuth(cfg *config.Config, options ...Option) *Auth {
	cfg = config.Normalized(cfg)
	vocabulary := &cfg.Vocabulary
	return &Auth{
		base: newBase(AuthName, cfg, detector.NewAuthDomain(vocabulary),
			[]source.Category{source.Endpoint, source.Service, source.Middleware, source.Utility}, options),
		clients:     variant.New("auth-client", variant.KeywordClassifier(variant.NameStyles(vocabulary.AuthClients...))),
		permissions: variant.New("permission-check", variant.Chain(variant.KeywordClassifier(vocabulary.PermissionStyles), roleComparison)),
		sessions:    variant.New("session-management", variant.KeywordClassifier(vocabulary.SessionStyles)),
	}
}

// Analyze analyzes file
func (a *Auth) Analyze(file *source.File) ([]issue.Issue, error) {
	return a.run(a.context(file),
		record(a.clients, authClientDivergence, isCall),
		record(a.permissions, permissionDivergence, isPermissionCheck),
		record(a.sessions, sessionDivergence, isCall),
		a.redundantMiddleware,
		passThrough,
		missingErrorHandling,
	)
}

func (a *Auth) redundantMiddleware(ctx *detector.Context) ([]issue.Issue, error) {
	return detector.RedundantMiddleware(ctx, a.config.Vocabulary.AuthMiddlewareKeywords)
}

// roleComparison classifies equality tests on a role property, i.e. user.role === 'admin'
func roleComparison(node tree.Node) (string, bool) {
	if node.Kind() != tree.KindBinary {
		return "", false
	}
	switch node.Field("operator").Text() {
	case "==", "===", "!=", "!==":
	default:
		return "", false
	}
	for _, operand := range []tree.Node{node.Field("left"), node.Field("right")} {
		operand = tree.Unwrap(operand)
		if operand.Kind() == tree.KindMember && operand.Field("property").Text() == roleLabel {
			return roleLabel, true
		}
	}
	return "", false
}

func isCall(n tree.Node) bool {
	return tree.IsCall(n)
}

func isPermissionCheck(n tree.Node) bool {
	return tree.IsCall(n) || n.Kind() == tree.KindBinary
}
