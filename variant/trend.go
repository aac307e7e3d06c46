package variant

import (
	"sync"

	"github.com/viant/patternlint/tree"
)

// Trend tracks the run-wide share of observations having a property, i.e. typed catch clauses
type Trend struct {
	name         string
	mux          sync.Mutex
	observations []TrendObservation
	positive     int
}

// TrendObservation represents a single trend sample
type TrendObservation struct {
	File     string
	Node     tree.Node
	Positive bool
	Example  string
}

// NewTrend creates a trend
func NewTrend(name string) *Trend {
	return &Trend{name: name}
}

// Name returns trend name
func (t *Trend) Name() string {
	return t.name
}

// Observe records a sample, example optionally names the positive variant (i.e. an error class)
func (t *Trend) Observe(file string, node tree.Node, positive bool, example string) {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.observations = append(t.observations, TrendObservation{File: file, Node: node, Positive: positive, Example: example})
	if positive {
		t.positive++
	}
}

// Ratio returns share of positive samples, 0 when nothing was observed
func (t *Trend) Ratio() float64 {
	t.mux.Lock()
	defer t.mux.Unlock()
	if len(t.observations) == 0 {
		return 0
	}
	return float64(t.positive) / float64(len(t.observations))
}

// Counts returns positive and total sample counts
func (t *Trend) Counts() (int, int) {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.positive, len(t.observations)
}

// Examples returns up to limit distinct non-empty examples of positive samples, in first-seen order
func (t *Trend) Examples(limit int) []string {
	t.mux.Lock()
	defer t.mux.Unlock()
	var result []string
	seen := map[string]bool{}
	for _, observation := range t.observations {
		if !observation.Positive || observation.Example == "" || seen[observation.Example] {
			continue
		}
		seen[observation.Example] = true
		result = append(result, observation.Example)
		if len(result) == limit {
			break
		}
	}
	return result
}

// Reset discards all samples
func (t *Trend) Reset() {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.observations = nil
	t.positive = 0
}
