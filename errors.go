package docbatch

import "errors"

// Sentinel errors for library operations.
var (
	// Setup and configuration errors. These abort a batch before any task runs.
	ErrDirectoryNotFound  = errors.New("input directory not found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidFormat      = errors.New("invalid target format")
	ErrInvalidPattern     = errors.New("invalid file pattern")

	// Routing errors.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// External renderer errors. These surface as per-task failures.
	ErrRendererUnavailable = errors.New("external renderer not available")
	ErrConversionFailed    = errors.New("conversion failed")
	ErrConversionTimeout   = errors.New("conversion timed out")

	// Headless browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Content errors.
	ErrEmptyContent   = errors.New("input content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrNoPages        = errors.New("PDF contains no pages")

	// Image conversion validation errors.
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrInvalidDPI         = errors.New("invalid DPI")
	ErrInvalidPageRange   = errors.New("invalid page range")
)
