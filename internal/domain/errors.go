package domain

import "errors"

var (
	// ErrUnsupportedFormat is returned for resume files with an
	// extension no extractor recognizes.
	ErrUnsupportedFormat = errors.New("unsupported resume format")

	// ErrEmptyResume is returned when extraction yields no usable text.
	ErrEmptyResume = errors.New("resume contains no extractable text")
)
