package issue

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/minio/highwayhash"
	"github.com/viant/patternlint/tree"
)

// MinRecommendationLength is the minimum accepted recommendation length
const MinRecommendationLength = 20

// identityKey seeds issue identity hashing, changing it changes every issue id
var identityKey = []byte("patternlint.issue.identity.key.1")

var (
	// ErrWeakRecommendation is returned when an issue is created without an actionable recommendation
	ErrWeakRecommendation = errors.New("recommendation too short")
	// ErrMissingNode is returned when an issue is created without an anchoring node
	ErrMissingNode = errors.New("missing anchoring node")
)

// Spec carries the detector supplied part of an issue
type Spec struct {
	Type           Type
	Severity       Severity
	Category       Category
	File           string
	Node           tree.Node
	Description    string
	Recommendation string
	Effort         Effort
	Tags           []string
}

// Factory creates issues on behalf of one analyzer
type Factory struct {
	detectedBy  string
	clock       func() time.Time
	snippetSize int
	mux         sync.Mutex
	seen        map[uint64]int
}

// FactoryOption configures factory
type FactoryOption func(f *Factory)

// WithClock sets detection clock
func WithClock(clock func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.clock = clock
	}
}

// WithSnippetSize sets maximum code snippet length
func WithSnippetSize(size int) FactoryOption {
	return func(f *Factory) {
		f.snippetSize = size
	}
}

// NewFactory creates a factory stamping issues with detectedBy
func NewFactory(detectedBy string, options ...FactoryOption) *Factory {
	ret := &Factory{
		detectedBy:  detectedBy,
		clock:       time.Now,
		snippetSize: tree.DefaultSnippetLength,
		seen:        map[uint64]int{},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// DetectedBy returns the analyzer name stamped on issues
func (f *Factory) DetectedBy() string {
	return f.detectedBy
}

// Create builds an issue, location and snippet are derived from spec.Node
func (f *Factory) Create(spec Spec) (Issue, error) {
	if len(strings.TrimSpace(spec.Recommendation)) < MinRecommendationLength {
		return Issue{}, fmt.Errorf("%s: %w: %q", f.detectedBy, ErrWeakRecommendation, spec.Recommendation)
	}
	if spec.Node.IsZero() {
		return Issue{}, fmt.Errorf("%s: %w: %s", f.detectedBy, ErrMissingNode, spec.Description)
	}
	id, err := f.nextID(spec)
	if err != nil {
		return Issue{}, err
	}
	tags := make([]string, len(spec.Tags))
	copy(tags, spec.Tags)
	return Issue{
		ID:              id,
		Type:            spec.Type,
		Severity:        spec.Severity,
		Category:        spec.Category,
		File:            spec.File,
		Location:        tree.Locate(spec.Node),
		Description:     spec.Description,
		CodeSnippet:     tree.Snippet(spec.Node, f.snippetSize),
		Recommendation:  spec.Recommendation,
		EstimatedEffort: spec.Effort,
		Tags:            tags,
		DetectedBy:      f.detectedBy,
		DetectedAt:      f.clock(),
		RelatedIssues:   []string{},
	}, nil
}

// nextID derives identity from issue content; repeated keys get an occurrence suffix
func (f *Factory) nextID(spec Spec) (string, error) {
	hash, err := highwayhash.New64(identityKey)
	if err != nil {
		return "", fmt.Errorf("failed to hash issue identity: %w", err)
	}
	span := strconv.Itoa(spec.Node.Start()) + ":" + strconv.Itoa(spec.Node.End())
	for _, field := range []string{f.detectedBy, spec.File, string(spec.Type), span, spec.Description} {
		_, _ = io.WriteString(hash, field)
		_, _ = hash.Write([]byte{0})
	}
	sum := hash.Sum64()
	f.mux.Lock()
	occurrence := f.seen[sum]
	f.seen[sum] = occurrence + 1
	f.mux.Unlock()
	id := fmt.Sprintf("%016x", sum)
	if occurrence > 0 {
		id += "-" + strconv.Itoa(occurrence)
	}
	return id, nil
}

// Reset clears identity bookkeeping, it is used when the same factory starts a new run
func (f *Factory) Reset() {
	f.mux.Lock()
	f.seen = map[uint64]int{}
	f.mux.Unlock()
}
