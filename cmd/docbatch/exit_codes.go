package main

import (
	"errors"
	"os"

	docbatch "github.com/avelar/go-docbatch"
)

// Exit codes for the docbatch CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitRenderer = 4 // Office suite or browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External renderer errors (exit 4)
	if errors.Is(err, docbatch.ErrRendererUnavailable) ||
		errors.Is(err, docbatch.ErrBrowserConnect) ||
		errors.Is(err, docbatch.ErrPageCreate) ||
		errors.Is(err, docbatch.ErrPageLoad) ||
		errors.Is(err, docbatch.ErrPDFGeneration) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docbatch.ErrDirectoryNotFound) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, docbatch.ErrInvalidFormat) ||
		errors.Is(err, docbatch.ErrInvalidWorkerCount) ||
		errors.Is(err, docbatch.ErrInvalidPattern) ||
		errors.Is(err, docbatch.ErrUnsupportedConversion) ||
		errors.Is(err, docbatch.ErrInvalidImageFormat) ||
		errors.Is(err, docbatch.ErrInvalidDPI) ||
		errors.Is(err, docbatch.ErrInvalidPageRange) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
