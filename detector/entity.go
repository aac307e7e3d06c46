package detector

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

const schemaRoot = "Database["

// schemaTypeMarkers identify generated schema row types in a type annotation
var schemaTypeMarkers = []string{schemaRoot, "Row", "Insert", "Update"}

// IsEntity returns true if name is an entity or its plural, case insensitively, i.e. users for user
func IsEntity(name string, entities []string) bool {
	name = strings.ToLower(name)
	for _, entity := range entities {
		entity = strings.ToLower(entity)
		if name == entity || name == entity+"s" {
			return true
		}
	}
	return false
}

// EntityName returns the key entity type usage is tracked under: the binding name of a typed declarator
// that is named after an entity or annotated with a generated schema type
func EntityName(declarator tree.Node, entities []string) string {
	if declarator.Kind() != tree.KindVariableDeclarator {
		return ""
	}
	name := declarator.Field("name")
	declared := tree.DeclaredType(declarator)
	if name.Kind() != tree.KindIdentifier || declared == "" {
		return ""
	}
	if IsEntity(name.Text(), entities) {
		return name.Text()
	}
	for _, marker := range schemaTypeMarkers {
		if strings.Contains(declared, marker) {
			return name.Text()
		}
	}
	return ""
}

// EntityType classifies typed declarators by their whitespace normalized type annotation
func EntityType() variant.Classifier[string] {
	return func(node tree.Node) (string, bool) {
		declared := strings.Join(strings.Fields(tree.DeclaredType(node)), " ")
		return declared, declared != ""
	}
}

// ManualSchemaType reports a type alias or interface named after an entity in a file importing generated
// schema types, unless the declaration derives from the generated Database type
func ManualSchemaType(ctx *Context, declaration tree.Node, entities []string, schemaModules []string) (*issue.Issue, error) {
	noun := ""
	switch declaration.Kind() {
	case tree.KindTypeAlias:
		noun = "type"
	case tree.KindInterface:
		noun = "interface"
	default:
		return nil, nil
	}
	name := declaration.Field("name").Text()
	if name == "" || !unicode.IsUpper(rune(name[0])) || !IsEntity(name, entities) {
		return nil, nil
	}
	if strings.Contains(declaration.Text(), schemaRoot) || !ImportsModule(ctx.Root(), schemaModules) {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.InconsistentPattern,
		Severity:       issue.Low,
		Node:           declaration,
		Description:    fmt.Sprintf("Manual %v definition '%v' may conflict with generated schema types. This can lead to type mismatches and runtime errors.", noun, name),
		Recommendation: "Use the generated schema types instead of manual definitions. If a manual type is necessary, derive it from the Database type so it follows the schema.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("type-safety", "generated-types"),
	})
}
