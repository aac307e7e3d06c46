package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/viant/patternlint/engine"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
)

// Format identifies report encoding
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
	Text    Format = "text"
)

// ErrUnsupportedFormat is returned for unknown report formats
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formats lists supported formats
var Formats = []Format{Text, JSON, YAML, MsgPack}

// ParseFormat parses a format name
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, candidate := range Formats {
		if candidate == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Writer writes run result
type Writer interface {
	Write(w io.Writer, result *engine.Result) error
}

// New creates a writer for format
func New(format Format, options ...Option) (Writer, error) {
	settings := &settings{}
	for _, option := range options {
		option(settings)
	}
	switch format {
	case JSON:
		return &jsonWriter{}, nil
	case YAML:
		return &yamlWriter{}, nil
	case MsgPack:
		return &msgpackWriter{}, nil
	case Text, "":
		return newTextWriter(settings), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Document represents a complete report
type Document struct {
	Project *source.Project  `json:"project,omitempty" yaml:"project,omitempty"`
	Summary Summary          `json:"summary" yaml:"summary"`
	Issues  []issue.Issue    `json:"issues" yaml:"issues"`
	Skipped []engine.Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Faults  []engine.Fault   `json:"faults,omitempty" yaml:"faults,omitempty"`
}

// Summary represents run totals
type Summary struct {
	Files      int                    `json:"files" yaml:"files"`
	Analyzed   int                    `json:"analyzed" yaml:"analyzed"`
	Skipped    int                    `json:"skipped" yaml:"skipped"`
	Faults     int                    `json:"faults" yaml:"faults"`
	Issues     int                    `json:"issues" yaml:"issues"`
	BySeverity map[issue.Severity]int `json:"bySeverity,omitempty" yaml:"bySeverity,omitempty"`
	ByType     map[issue.Type]int     `json:"byType,omitempty" yaml:"byType,omitempty"`
	ByCategory map[issue.Category]int `json:"byCategory,omitempty" yaml:"byCategory,omitempty"`
	Duration   string                 `json:"duration" yaml:"duration"`
}

// NewDocument creates report document for result
func NewDocument(result *engine.Result) *Document {
	issues := result.Issues
	if issues == nil {
		issues = []issue.Issue{}
	}
	byCategory := map[issue.Category]int{}
	byType := map[issue.Type]int{}
	for _, item := range issues {
		byCategory[item.Category]++
		byType[item.Type]++
	}
	return &Document{
		Project: result.Project,
		Summary: Summary{
			Files:      result.Files,
			Analyzed:   result.Analyzed,
			Skipped:    len(result.Skipped),
			Faults:     len(result.Faults),
			Issues:     len(issues),
			BySeverity: issue.Count(issues),
			ByType:     byType,
			ByCategory: byCategory,
			Duration:   result.Duration.String(),
		},
		Issues:  issues,
		Skipped: result.Skipped,
		Faults:  result.Faults,
	}
}
