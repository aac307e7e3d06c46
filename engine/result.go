package engine

import (
	"time"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
)

// Skipped represents a file excluded from analysis
type Skipped struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

// Fault represents an analyzer failure on a file, the pair contributes no issues
type Fault struct {
	Path     string `json:"path" yaml:"path"`
	Analyzer string `json:"analyzer" yaml:"analyzer"`
	Reason   string `json:"reason" yaml:"reason"`
	Err      error  `json:"-" yaml:"-"`
}

// Result represents a run outcome, issues are ordered by file input order then detection order
type Result struct {
	Project  *source.Project `json:"project,omitempty" yaml:"project,omitempty"`
	Issues   []issue.Issue   `json:"issues" yaml:"issues"`
	Skipped  []Skipped       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Faults   []Fault         `json:"faults,omitempty" yaml:"faults,omitempty"`
	Files    int             `json:"files" yaml:"files"`
	Analyzed int             `json:"analyzed" yaml:"analyzed"`
	Duration time.Duration   `json:"duration" yaml:"duration"`
}

func (r *Result) skip(path string, err error) {
	r.Skipped = append(r.Skipped, Skipped{Path: path, Reason: err.Error(), Err: err})
}

func (r *Result) fault(path, analyzer string, err error) {
	r.Faults = append(r.Faults, Fault{Path: path, Analyzer: analyzer, Reason: err.Error(), Err: err})
}

// Counts returns number of issues per severity
func (r *Result) Counts() map[issue.Severity]int {
	return issue.Count(r.Issues)
}
