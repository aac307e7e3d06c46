package tree

import (
	"sort"
	"unicode/utf8"
)

// Position represents 1-based line and column
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Location represents a node span in the source file
type Location struct {
	StartLine   int `json:"startLine" yaml:"startLine"`
	EndLine     int `json:"endLine" yaml:"endLine"`
	StartColumn int `json:"startColumn" yaml:"startColumn"`
	EndColumn   int `json:"endColumn" yaml:"endColumn"`
}

// LineIndex maps byte offsets to line/column positions
type LineIndex struct {
	src    []byte
	starts []int // byte offset of each line start
}

// NewLineIndex builds a newline index for src
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// LineCount returns number of lines
func (l *LineIndex) LineCount() int {
	return len(l.starts)
}

// Position returns 1-based line and column for byte offset, columns are counted in runes
func (l *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.src) {
		offset = len(l.src)
	}
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	column := utf8.RuneCount(l.src[l.starts[line]:offset]) + 1
	return Position{Line: line + 1, Column: column}
}

// Locate returns the location of node
func Locate(node Node) Location {
	if node.IsZero() || node.file == nil {
		return Location{}
	}
	start := node.file.lines.Position(node.Start())
	end := node.file.lines.Position(node.End())
	return Location{
		StartLine:   start.Line,
		EndLine:     end.Line,
		StartColumn: start.Column,
		EndColumn:   end.Column,
	}
}
