package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DefaultExcludedDirs lists folders never descended into
var DefaultExcludedDirs = []string{"node_modules", ".git", ".next", "dist", "build", "coverage", "out"}

// Scanner discovers and loads source units
type Scanner struct {
	fs         afs.Service
	extensions map[string]bool
	excluded   map[string]bool
	exclude    []string
	include    []string
	maxDepth   int
}

// ScannerOption configures scanner
type ScannerOption func(s *Scanner)

// WithExtensions overrides accepted file extensions
func WithExtensions(extensions ...string) ScannerOption {
	return func(s *Scanner) {
		s.extensions = map[string]bool{}
		for _, extension := range extensions {
			s.extensions[strings.ToLower(extension)] = true
		}
	}
}

// WithExcludedDirs overrides excluded folder names
func WithExcludedDirs(names ...string) ScannerOption {
	return func(s *Scanner) {
		s.excluded = map[string]bool{}
		for _, name := range names {
			s.excluded[name] = true
		}
	}
}

// WithInclude keeps only relative paths matching any of the patterns (path.Match syntax, ** allowed as prefix)
func WithInclude(patterns ...string) ScannerOption {
	return func(s *Scanner) {
		s.include = patterns
	}
}

// WithExclude drops relative paths matching any of the patterns
func WithExclude(patterns ...string) ScannerOption {
	return func(s *Scanner) {
		s.exclude = patterns
	}
}

// WithMaxDepth limits folder depth, 0 means unlimited
func WithMaxDepth(depth int) ScannerOption {
	return func(s *Scanner) {
		s.maxDepth = depth
	}
}

// WithFS sets file system service
func WithFS(fs afs.Service) ScannerOption {
	return func(s *Scanner) {
		s.fs = fs
	}
}

// NewScanner creates a scanner
func NewScanner(options ...ScannerOption) *Scanner {
	ret := &Scanner{fs: afs.New(), maxDepth: 0}
	WithExtensions(Extensions...)(ret)
	WithExcludedDirs(DefaultExcludedDirs...)(ret)
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Discover walks rootURL and returns matching units ordered by relative path
func (s *Scanner) Discover(ctx context.Context, rootURL string) ([]Unit, error) {
	var units []Unit
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			if s.excluded[info.Name()] {
				return false, nil
			}
			if s.maxDepth > 0 && depth(parent) >= s.maxDepth {
				return false, nil
			}
			return true, nil
		}
		relative := path.Join(parent, info.Name())
		if !s.accepts(relative) {
			return true, nil
		}
		units = append(units, NewUnit(url.Join(baseURL, relative), relative, info.Size()))
		return true, nil
	}
	if err := s.fs.Walk(ctx, rootURL, visitor); err != nil {
		return nil, fmt.Errorf("failed to discover sources in %s: %w", rootURL, err)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].RelativePath < units[j].RelativePath
	})
	return units, nil
}

// Load downloads unit content
func (s *Scanner) Load(ctx context.Context, unit Unit) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, unit.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", unit.Path, err)
	}
	return data, nil
}

func (s *Scanner) accepts(relative string) bool {
	if !s.extensions[strings.ToLower(Extension(relative))] {
		return false
	}
	if len(s.include) > 0 && !matchAny(s.include, relative) {
		return false
	}
	return !matchAny(s.exclude, relative)
}

func depth(parent string) int {
	parent = strings.Trim(parent, "/")
	if parent == "" {
		return 0
	}
	return strings.Count(parent, "/") + 1
}

// matchAny matches relative path against glob patterns, a leading **/ matches any folder prefix
func matchAny(patterns []string, relative string) bool {
	for _, pattern := range patterns {
		if matched, _ := path.Match(pattern, relative); matched {
			return true
		}
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
			segments := strings.Split(relative, "/")
			for i := range segments {
				if matched, _ := path.Match(suffix, strings.Join(segments[i:], "/")); matched {
					return true
				}
			}
		}
	}
	return false
}
