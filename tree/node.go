package tree

import (
	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
)

// Node wraps tree-sitter node with its owning file, zero value represents an absent node
type Node struct {
	raw  *sitter.Node
	file *File
}

// IsZero returns true if node is absent
func (n Node) IsZero() bool {
	return n.raw == nil
}

// Kind returns node grammar type
func (n Node) Kind() string {
	if n.raw == nil {
		return ""
	}
	return n.raw.Type()
}

// Text returns raw node source text
func (n Node) Text() string {
	if n.raw == nil || n.file == nil {
		return ""
	}
	return n.raw.Content(n.file.Source)
}

// File returns owning file
func (n Node) File() *File {
	return n.file
}

// Start returns start byte offset
func (n Node) Start() int {
	if n.raw == nil {
		return 0
	}
	return toInt(n.raw.StartByte())
}

// End returns end byte offset
func (n Node) End() int {
	if n.raw == nil {
		return 0
	}
	return toInt(n.raw.EndByte())
}

// Same reports whether both values denote the same syntax node
func (n Node) Same(other Node) bool {
	if n.raw == nil || other.raw == nil {
		return n.raw == other.raw
	}
	return n.file == other.file && n.Start() == other.Start() && n.End() == other.End() && n.Kind() == other.Kind()
}

// Parent returns parent node (non-owning back reference)
func (n Node) Parent() Node {
	if n.raw == nil {
		return Node{}
	}
	return n.wrap(n.raw.Parent())
}

// Field returns child by grammar field name
func (n Node) Field(name string) Node {
	if n.raw == nil {
		return Node{}
	}
	return n.wrap(n.raw.ChildByFieldName(name))
}

// Children returns named children in document order
func (n Node) Children() []Node {
	if n.raw == nil {
		return nil
	}
	count := toInt(n.raw.NamedChildCount())
	result := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if child := n.raw.NamedChild(i); child != nil {
			result = append(result, n.wrap(child))
		}
	}
	return result
}

// AllChildren returns named and anonymous children in document order
func (n Node) AllChildren() []Node {
	if n.raw == nil {
		return nil
	}
	count := toInt(n.raw.ChildCount())
	result := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if child := n.raw.Child(i); child != nil {
			result = append(result, n.wrap(child))
		}
	}
	return result
}

// FirstChild returns first named child that is not a comment
func (n Node) FirstChild() Node {
	for _, child := range n.Children() {
		if child.Kind() != KindComment {
			return child
		}
	}
	return Node{}
}

// NextSiblings returns named siblings that follow n, comments excluded
func (n Node) NextSiblings() []Node {
	parent := n.Parent()
	if parent.IsZero() {
		return nil
	}
	var result []Node
	found := false
	for _, child := range parent.Children() {
		if found {
			if child.Kind() != KindComment {
				result = append(result, child)
			}
			continue
		}
		found = child.Same(n)
	}
	return result
}

// Raw returns underlying tree-sitter node
func (n Node) Raw() *sitter.Node {
	return n.raw
}

func (n Node) wrap(raw *sitter.Node) Node {
	if raw == nil || raw.IsNull() {
		return Node{}
	}
	return Node{raw: raw, file: n.file}
}

func toInt(v uint32) int {
	result, err := safecast.Conv[int](v)
	if err != nil {
		return 0
	}
	return result
}
