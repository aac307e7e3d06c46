package analyzer

import (
	"log/slog"
	"time"

	"github.com/viant/patternlint/issue"
)

type Option func(*base)

// WithClock sets issue detection clock
func WithClock(clock func() time.Time) Option {
	return func(b *base) {
		b.factoryOptions = append(b.factoryOptions, issue.WithClock(clock))
	}
}

// WithSnippetSize sets max issue snippet length
func WithSnippetSize(size int) Option {
	return func(b *base) {
		b.factoryOptions = append(b.factoryOptions, issue.WithSnippetSize(size))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}
