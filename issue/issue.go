package issue

import (
	"time"

	"github.com/viant/patternlint/tree"
)

// Type identifies the class of a detected problem
type Type string

const (
	InconsistentPattern  Type = "inconsistent-pattern"
	MissingErrorHandling Type = "missing-error-handling"
	UnnecessaryAdapter   Type = "unnecessary-adapter"
	TypeSafety           Type = "type-safety"
	Architectural        Type = "architectural"
	CodeDuplication      Type = "code-duplication"
	ConfusingLogic       Type = "confusing-logic"
)

// Severity represents issue severity
type Severity string

const (
	Critical Severity = "critical"
	High     Severity = "high"
	Medium   Severity = "medium"
	Low      Severity = "low"
)

// Rank returns severity rank, higher is more severe
func (s Severity) Rank() int {
	switch s {
	case Critical:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// Category groups issues by concern
type Category string

const (
	Authentication Category = "authentication"
	Persistence    Category = "persistence"
	ErrorHandling  Category = "error-handling"
)

// Effort estimates the work needed to address an issue
type Effort string

const (
	EffortTrivial Effort = "trivial"
	EffortSmall   Effort = "small"
	EffortMedium  Effort = "medium"
	EffortLarge   Effort = "large"
)

// Issue represents a structured finding, treat as immutable once created
type Issue struct {
	ID              string        `json:"id" yaml:"id"`
	Type            Type          `json:"type" yaml:"type"`
	Severity        Severity      `json:"severity" yaml:"severity"`
	Category        Category      `json:"category" yaml:"category"`
	File            string        `json:"file" yaml:"file"`
	Location        tree.Location `json:"location" yaml:"location"`
	Description     string        `json:"description" yaml:"description"`
	CodeSnippet     string        `json:"codeSnippet" yaml:"codeSnippet"`
	Recommendation  string        `json:"recommendation" yaml:"recommendation"`
	EstimatedEffort Effort        `json:"estimatedEffort" yaml:"estimatedEffort"`
	Tags            []string      `json:"tags" yaml:"tags"`
	DetectedBy      string        `json:"detectedBy" yaml:"detectedBy"`
	DetectedAt      time.Time     `json:"detectedAt" yaml:"detectedAt"`
	RelatedIssues   []string      `json:"relatedIssues" yaml:"relatedIssues"`
}

// HasTag returns true if issue carries tag
func (i *Issue) HasTag(tag string) bool {
	for _, candidate := range i.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}
