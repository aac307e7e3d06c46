package report

type settings struct {
	color bool
	width int
}

type Option func(s *settings)

// WithColor enables ANSI colors in text reports
func WithColor(color bool) Option {
	return func(s *settings) {
		s.color = color
	}
}

// WithWidth truncates text report lines to width display cells, 0 disables truncation
func WithWidth(width int) Option {
	return func(s *settings) {
		s.width = width
	}
}
