package variant

import "github.com/viant/patternlint/tree"

// Style describes one label of a keyword classifier
type Style struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	// Calls lists callee names, i.e. checkRole matches checkRole(user) and auth.checkRole(user)
	Calls []string `json:"calls,omitempty" yaml:"calls,omitempty" toml:"calls"`
	// Receivers lists root identifiers, i.e. jwt matches jwt.verify(token)
	Receivers []string `json:"receivers,omitempty" yaml:"receivers,omitempty" toml:"receivers"`
}

// NameStyles creates one style per name, labelled by the name itself
func NameStyles(names ...string) []Style {
	result := make([]Style, 0, len(names))
	for _, name := range names {
		result = append(result, Style{Label: name, Calls: []string{name}})
	}
	return result
}

// KeywordClassifier classifies call expressions by the callee chain; styles are tested in order, first match wins
func KeywordClassifier(styles []Style) Classifier[string] {
	type entry struct {
		label     string
		calls     map[string]bool
		receivers map[string]bool
	}
	entries := make([]entry, 0, len(styles))
	for _, style := range styles {
		item := entry{label: style.Label, calls: map[string]bool{}, receivers: map[string]bool{}}
		for _, name := range style.Calls {
			item.calls[name] = true
		}
		for _, name := range style.Receivers {
			item.receivers[name] = true
		}
		entries = append(entries, item)
	}
	return func(node tree.Node) (string, bool) {
		if !tree.IsCall(node) {
			return "", false
		}
		chain := tree.CalleeChain(node)
		if len(chain) == 0 {
			return "", false
		}
		name := chain[len(chain)-1]
		root := ""
		if len(chain) > 1 {
			root = chain[0]
		}
		for _, item := range entries {
			if item.calls[name] || (root != "" && item.receivers[root]) {
				return item.label, true
			}
		}
		return "", false
	}
}

// Chain combines classifiers, the first applicable one wins
func Chain[L comparable](classifiers ...Classifier[L]) Classifier[L] {
	return func(node tree.Node) (L, bool) {
		for _, classify := range classifiers {
			if label, ok := classify(node); ok {
				return label, true
			}
		}
		var zero L
		return zero, false
	}
}
