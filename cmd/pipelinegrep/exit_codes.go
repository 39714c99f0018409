package main

import (
	"errors"
	"os"

	pipelinegrep "github.com/alnah/go-pipelinegrep"
	"github.com/alnah/go-pipelinegrep/internal/config"
	"github.com/alnah/go-pipelinegrep/internal/highlight"
)

// Exit codes for the pipelinegrep CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Search completed, with or without matches
	ExitGeneral    = 1 // General/unexpected error
	ExitNoPatterns = 1 // No pattern on the command line
	ExitUsage      = 2 // Invalid flags, template, pattern, or config
	ExitIO         = 3 // Reading input or writing output failed
	ExitData       = 4 // Input is not a usable pipeline config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, pipelinegrep.ErrNoPatterns) {
		return ExitNoPatterns
	}

	// Data format errors (exit 4)
	if errors.Is(err, pipelinegrep.ErrNoSectionClose) ||
		errors.Is(err, pipelinegrep.ErrSectionName) {
		return ExitData
	}

	// I/O errors (exit 3)
	if errors.Is(err, pipelinegrep.ErrReadInput) ||
		errors.Is(err, pipelinegrep.ErrWriteOutput) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownFlag) ||
		errors.Is(err, ErrMissingFormat) ||
		errors.Is(err, pipelinegrep.ErrInvalidPattern) ||
		errors.Is(err, pipelinegrep.ErrTemplate) ||
		errors.Is(err, pipelinegrep.ErrUnknownFormat) ||
		errors.Is(err, pipelinegrep.ErrInvalidMarkers) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, highlight.ErrInvalidMode) {
		return ExitUsage
	}

	return ExitGeneral
}
