package variant

import (
	"sync"

	"github.com/viant/patternlint/tree"
)

// Classifier maps a candidate node to a label, false means not applicable
type Classifier[L comparable] func(node tree.Node) (L, bool)

// Observation represents a classified occurrence of a tracked concern
type Observation[L comparable] struct {
	Label L
	Node  tree.Node
	File  string
}

// Outcome represents the result of recording an observation
type Outcome[L comparable] struct {
	Observation Observation[L]
	// Diverged is set only for the observation that introduced the second distinct label
	Diverged bool
	// Labels lists distinct labels seen so far, in first-seen order
	Labels []L
}

// Accumulator tracks every distinct way a concern is implemented across a run.
// A single instance is shared by all files of a run, in file processing order.
type Accumulator[L comparable] struct {
	name         string
	classify     Classifier[L]
	mux          sync.Mutex
	observations []Observation[L]
	labels       []L
	seen         map[L]bool
}

// New creates an accumulator
func New[L comparable](name string, classify Classifier[L]) *Accumulator[L] {
	return &Accumulator[L]{
		name:     name,
		classify: classify,
		seen:     map[L]bool{},
	}
}

// Name returns accumulator name
func (a *Accumulator[L]) Name() string {
	return a.name
}

// Record classifies node and, if applicable, appends the observation; the second return value is false
// when the node is not applicable
func (a *Accumulator[L]) Record(file string, node tree.Node) (Outcome[L], bool) {
	label, ok := a.classify(node)
	if !ok {
		return Outcome[L]{}, false
	}
	return a.Add(file, node, label), true
}

// Add appends an already classified observation
func (a *Accumulator[L]) Add(file string, node tree.Node, label L) Outcome[L] {
	observation := Observation[L]{Label: label, Node: node, File: file}
	a.mux.Lock()
	defer a.mux.Unlock()
	a.observations = append(a.observations, observation)
	introduced := !a.seen[label]
	if introduced {
		a.seen[label] = true
		a.labels = append(a.labels, label)
	}
	labels := make([]L, len(a.labels))
	copy(labels, a.labels)
	return Outcome[L]{
		Observation: observation,
		Diverged:    introduced && len(a.labels) == 2,
		Labels:      labels,
	}
}

// Observations returns a snapshot of recorded observations
func (a *Accumulator[L]) Observations() []Observation[L] {
	a.mux.Lock()
	defer a.mux.Unlock()
	result := make([]Observation[L], len(a.observations))
	copy(result, a.observations)
	return result
}

// Labels returns distinct labels in first-seen order
func (a *Accumulator[L]) Labels() []L {
	a.mux.Lock()
	defer a.mux.Unlock()
	result := make([]L, len(a.labels))
	copy(result, a.labels)
	return result
}

// Counts returns number of observations per label
func (a *Accumulator[L]) Counts() map[L]int {
	a.mux.Lock()
	defer a.mux.Unlock()
	result := make(map[L]int, len(a.labels))
	for _, observation := range a.observations {
		result[observation.Label]++
	}
	return result
}

// Dominant returns the most frequent label, ties resolved by first-seen order
func (a *Accumulator[L]) Dominant() (L, bool) {
	counts := a.Counts()
	var result L
	best := 0
	for _, label := range a.Labels() {
		if counts[label] > best {
			result, best = label, counts[label]
		}
	}
	return result, best > 0
}

// Reset discards all observations
func (a *Accumulator[L]) Reset() {
	a.mux.Lock()
	defer a.mux.Unlock()
	a.observations = nil
	a.labels = nil
	a.seen = map[L]bool{}
}
