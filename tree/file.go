package tree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// File represents a parsed source file: its path, raw bytes, syntax tree root and newline index.
type File struct {
	Path   string
	Source []byte
	root   *sitter.Node
	lines  *LineIndex
}

// NewFile creates a File for the supplied tree root
func NewFile(path string, src []byte, root *sitter.Node) *File {
	return &File{
		Path:   path,
		Source: src,
		root:   root,
		lines:  NewLineIndex(src),
	}
}

// Root returns the file root node
func (f *File) Root() Node {
	return Node{raw: f.root, file: f}
}

// Lines returns the file newline index
func (f *File) Lines() *LineIndex {
	return f.lines
}

// HasError reports whether the parser recovered from syntax errors anywhere in the file
func (f *File) HasError() bool {
	return f.root != nil && f.root.HasError()
}
