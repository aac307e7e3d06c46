package engine

import "errors"

var (
	// ErrUnreadableFile is reported for files that could not be loaded
	ErrUnreadableFile = errors.New("unreadable file")
	// ErrUnparsableFile is reported for files without a usable syntax tree
	ErrUnparsableFile = errors.New("unparsable file")
	// ErrAnalyzerFault is reported when an analyzer fails or panics on a file
	ErrAnalyzerFault = errors.New("analyzer fault")
	// ErrTooManyErrors is returned when the number of failed files reaches the configured limit
	ErrTooManyErrors = errors.New("too many errors")
)
