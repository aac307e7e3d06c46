package detector

import (
	"fmt"
	"strings"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

// ClientImports returns imported names that match client constructors, in document order
func ClientImports(root tree.Node, clients []string) []tree.Node {
	known := map[string]bool{}
	for _, client := range clients {
		known[client] = true
	}
	var result []tree.Node
	for _, statement := range tree.FindWhere(root, isImport) {
		for _, specifier := range tree.FindByKind(statement, tree.KindImportSpecifier) {
			name := specifier.Field("name").Text()
			if known[name] || strings.Contains(strings.ToLower(name), "client") {
				result = append(result, specifier)
			}
		}
	}
	return result
}

// ClientImportSprawl reports a file importing more client constructors than the limit, anchored at the first import
func ClientImportSprawl(ctx *Context, clients []string) (*issue.Issue, error) {
	imports := ClientImports(ctx.Root(), clients)
	if len(imports) <= ctx.Thresholds.ClientImportLimit {
		return nil, nil
	}
	names := make([]string, 0, len(imports))
	for _, specifier := range imports {
		names = append(names, specifier.Field("name").Text())
	}
	return ctx.Create(issue.Spec{
		Type:           issue.InconsistentPattern,
		Severity:       issue.Low,
		Node:           tree.Enclosing(imports[0], isImport),
		Description:    fmt.Sprintf("Multiple %v client creation methods imported: %v. This suggests inconsistent patterns or bypassing established conventions.", ctx.Domain.Name, strings.Join(names, ", ")),
		Recommendation: "Standardize on a single client creation pattern appropriate for the context, and import it from one shared module.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("imports", "client-instantiation"),
	})
}

// ImportsModule returns true if root imports from a module whose specifier contains any of modules
func ImportsModule(root tree.Node, modules []string) bool {
	for _, statement := range tree.FindWhere(root, isImport) {
		specifier := strings.Trim(statement.Field("source").Text(), "'\"`")
		for _, module := range modules {
			if module != "" && strings.Contains(specifier, module) {
				return true
			}
		}
	}
	return false
}

func isImport(n tree.Node) bool {
	return n.Kind() == tree.KindImport
}
