package detector

import (
	"strings"

	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

// Domain describes the concern a detector runs for
type Domain struct {
	// Name is used in tags, i.e. auth or database
	Name string
	// Noun is used in descriptions, i.e. Auth or Database
	Noun     string
	Category issue.Category
	// Verbs matches risky calls
	Verbs *Matcher
	// Mutations matches risky calls that change state, nil means every operation is a mutation
	Mutations *Matcher
	// Keywords gate wrapper evaluation by function name
	Keywords []string
	// AdapterSeverity and AdapterEffort rate unnecessary wrappers of this domain
	AdapterSeverity issue.Severity
	AdapterEffort   issue.Effort
}

// NewAuthDomain creates authentication domain
func NewAuthDomain(vocabulary *config.Vocabulary) *Domain {
	return &Domain{
		Name:            "auth",
		Noun:            "Auth",
		Category:        issue.Authentication,
		Verbs:           NewMatcher(vocabulary.AuthOperations...),
		Keywords:        lower(vocabulary.AuthKeywords),
		AdapterSeverity: issue.Low,
		AdapterEffort:   issue.EffortTrivial,
	}
}

// NewPersistenceDomain creates persistence domain
func NewPersistenceDomain(vocabulary *config.Vocabulary) *Domain {
	return &Domain{
		Name:            "database",
		Noun:            "Database",
		Category:        issue.Persistence,
		Verbs:           NewMatcher(vocabulary.DatabaseOperations...),
		Mutations:       NewMatcher(vocabulary.DatabaseMutations...),
		Keywords:        lower(vocabulary.DatabaseKeywords),
		AdapterSeverity: issue.Medium,
		AdapterEffort:   issue.EffortSmall,
	}
}

// NewErrorHandlingDomain creates error handling domain, it has no risky operations of its own
func NewErrorHandlingDomain() *Domain {
	return &Domain{
		Name:     "error-handling",
		Noun:     "Error handling",
		Category: issue.ErrorHandling,
	}
}

// Operation represents a risky call; Call is the outermost call of its fluent chain
type Operation struct {
	Call     tree.Node
	Verb     string
	Mutation bool
}

// Operations returns risky operations under root in document order, one per fluent chain
func (d *Domain) Operations(root tree.Node) []Operation {
	var result []Operation
	index := map[[2]int]int{}
	for _, call := range tree.FindByKind(root, tree.KindCall) {
		verb, ok := d.Verbs.Match(call)
		if !ok {
			continue
		}
		mutation := d.isMutation(call)
		outer := tree.OutermostChainCall(call)
		key := [2]int{outer.Start(), outer.End()}
		if i, ok := index[key]; ok {
			if mutation && !result[i].Mutation {
				result[i].Mutation, result[i].Verb = true, verb
			}
			continue
		}
		index[key] = len(result)
		result = append(result, Operation{Call: outer, Verb: verb, Mutation: mutation})
	}
	return result
}

// IsOperation returns true if call is a risky operation
func (d *Domain) IsOperation(call tree.Node) bool {
	_, ok := d.Verbs.Match(call)
	return ok
}

// ContainsOperation returns true if root contains any risky call
func (d *Domain) ContainsOperation(root tree.Node) bool {
	return d.Verbs.Contains(root)
}

func (d *Domain) isMutation(call tree.Node) bool {
	if d.Mutations == nil {
		return true
	}
	_, ok := d.Mutations.Match(call)
	return ok
}

// Relevant returns true if a function is worth evaluating as a wrapper of this domain
func (d *Domain) Relevant(fn tree.Node) bool {
	if MatchesKeyword(tree.FunctionName(fn), d.Keywords) {
		return true
	}
	return d.ContainsOperation(tree.FunctionBody(fn))
}

// MatchesKeyword returns true if text contains any of lower case keywords, case insensitively
func MatchesKeyword(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	text = strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func lower(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, strings.ToLower(value))
	}
	return result
}
