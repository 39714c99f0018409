package pipelinegrep

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoPatterns     = errors.New("no patterns provided")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")

	// Section indexing errors.
	ErrInvalidMarkers = errors.New("invalid section markers")
	ErrNoSectionClose = errors.New("section close marker not found")
	ErrSectionName    = errors.New("cannot extract section name")

	// Template errors.
	ErrTemplate           = errors.New("invalid template")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrUnknownFormat      = errors.New("unknown format name")
)
