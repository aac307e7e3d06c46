package source

import (
	"path"
	"strings"

	"github.com/viant/patternlint/tree"
)

// Unit represents a discovered source file, treat as immutable
type Unit struct {
	Path         string   `json:"path" yaml:"path"`
	RelativePath string   `json:"relativePath" yaml:"relativePath"`
	Category     Category `json:"category" yaml:"category"`
	Size         int64    `json:"size" yaml:"size"`
	Extension    string   `json:"extension" yaml:"extension"`
}

// NewUnit creates a unit, category is derived from relative path
func NewUnit(location, relativePath string, size int64) Unit {
	relativePath = strings.TrimPrefix(strings.ReplaceAll(relativePath, `\`, "/"), "/")
	extension := Extension(relativePath)
	return Unit{
		Path:         location,
		RelativePath: relativePath,
		Category:     Categorize(relativePath, extension),
		Size:         size,
		Extension:    extension,
	}
}

// Extension returns file extension, .d.ts declarations are reported as a whole
func Extension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".d.ts") {
		return ".d.ts"
	}
	return path.Ext(name)
}

// File represents parsed unit
type File struct {
	Unit Unit
	Tree *tree.File
}

// Root returns syntax tree root
func (f *File) Root() tree.Node {
	return f.Tree.Root()
}

// Category returns unit category
func (f *File) Category() Category {
	return f.Unit.Category
}

// Path returns the path issues are reported against
func (f *File) Path() string {
	if f.Unit.RelativePath != "" {
		return f.Unit.RelativePath
	}
	return f.Unit.Path
}
