package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/patternlint/tree"
)

var (
	// ErrUnsupportedLanguage is returned for extensions without a grammar
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrNoSyntaxTree is returned when the parser did not produce a tree
	ErrNoSyntaxTree = errors.New("no syntax tree")
)

// Extensions lists supported source extensions
var Extensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// Language returns tree-sitter grammar for the extension
func Language(extension string) (*sitter.Language, error) {
	switch strings.ToLower(extension) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage(), nil
	case ".tsx":
		return tsx.GetLanguage(), nil
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, extension)
}

// IsSupported returns true if extension has a grammar
func IsSupported(extension string) bool {
	_, err := Language(extension)
	return err == nil
}

// Parse parses unit source with a grammar selected by the unit extension
func Parse(ctx context.Context, unit Unit, src []byte) (*File, error) {
	language, err := Language(unit.Extension)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	parsed, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", unit.Path, err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("failed to parse %s: %w", unit.Path, ErrNoSyntaxTree)
	}
	root := parsed.RootNode()
	if root == nil || root.IsNull() {
		return nil, fmt.Errorf("failed to parse %s: %w", unit.Path, ErrNoSyntaxTree)
	}
	location := unit.RelativePath
	if location == "" {
		location = unit.Path
	}
	return &File{Unit: unit, Tree: tree.NewFile(location, src, root)}, nil
}

// ParseSource parses in-memory code as if it was stored at relativePath
func ParseSource(ctx context.Context, relativePath string, code string) (*File, error) {
	unit := NewUnit(relativePath, relativePath, int64(len(code)))
	return Parse(ctx, unit, []byte(code))
}
