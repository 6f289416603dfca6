package docbatch

import (
	"fmt"
	"strings"
	"time"
)

// Target format constants.
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatTXT  = "txt"
)

// Batch processing defaults.
const (
	// DefaultMaxWorkers is used when no worker count is supplied.
	DefaultMaxWorkers = 4

	// defaultTimeout caps a single external conversion call.
	// Office documents can take minutes to render.
	defaultTimeout = 5 * time.Minute
)

// Image conversion bounds.
const (
	MinDPI     = 50
	MaxDPI     = 1200
	DefaultDPI = 200

	DefaultImageQuality = 95
)

// Task is a single file's conversion request submitted to the worker pool.
// It is immutable once created and consumed exactly once by a worker.
type Task struct {
	InputPath    string
	OutputDir    string
	TargetFormat string
}

// ResultKind declares whether a conversion produced one output file or a
// page-indexed set of output files.
type ResultKind string

const (
	KindSingleFile     ResultKind = "single_file"
	KindMultipleImages ResultKind = "multiple_images"
)

// Result is the outcome of one task. Err is nil on success, in which case
// OutputPaths holds the produced file(s): exactly one for KindSingleFile,
// one per page for KindMultipleImages.
type Result struct {
	InputPath   string
	OutputPaths []string
	Format      string
	Kind        ResultKind
	Err         error
	Duration    time.Duration
}

// FileError pairs a failed input file with its error, suitable for display
// or machine consumption.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Summary aggregates per-file outcomes of a batch. Results and Errors are
// appended in completion order, which is not the submission order under
// concurrency. Successful + Failed always equals TotalFiles.
type Summary struct {
	TotalFiles int
	Successful int
	Failed     int
	Results    []Result
	Errors     []FileError
	Skipped    []string // inputs dropped before scheduling (missing files)
}

// ProgressFunc is invoked after every completed task, success or failure,
// with the current completed count, the fixed total, and the base name of
// the file just completed. Invocations are serialized under the scheduler's
// progress lock, so the callback itself need not be thread-safe.
type ProgressFunc func(completed, total int, filename string)

// ImageOptions configures PDF page rasterization.
type ImageOptions struct {
	Format    string // "jpeg" or "png"
	DPI       int
	Quality   int // JPEG quality 1-100, ignored for PNG
	FirstPage int // 1-indexed, 0 = from first page
	LastPage  int // 1-indexed, 0 = through last page
}

// DefaultImageOptions returns image options with default values.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Format:  FormatJPEG,
		DPI:     DefaultDPI,
		Quality: DefaultImageQuality,
	}
}

// Validate checks that image options are within bounds.
func (o ImageOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case FormatJPEG, FormatPNG:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidImageFormat, o.Format)
	}
	if o.DPI < MinDPI || o.DPI > MaxDPI {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidDPI, o.DPI, MinDPI, MaxDPI)
	}
	if o.FirstPage < 0 || o.LastPage < 0 {
		return fmt.Errorf("%w: pages must be positive", ErrInvalidPageRange)
	}
	if o.FirstPage > 0 && o.LastPage > 0 && o.FirstPage > o.LastPage {
		return fmt.Errorf("%w: first page %d after last page %d", ErrInvalidPageRange, o.FirstPage, o.LastPage)
	}
	return nil
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	officePath string
	browserBin string
	image      ImageOptions
}

// WithTimeout sets the per-conversion timeout for external renderer calls.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docbatch: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithOfficePath sets an explicit office renderer executable, skipping the
// fallback search list.
func WithOfficePath(path string) Option {
	return func(c *Converter) {
		c.cfg.officePath = path
	}
}

// WithBrowserBin sets a pre-installed browser binary for HTML rendering
// (Docker/containerized environments).
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithImageOptions sets defaults for PDF page rasterization.
func WithImageOptions(o ImageOptions) Option {
	return func(c *Converter) {
		c.cfg.image = o
	}
}

// validTargetFormat reports whether format is a supported batch target.
func validTargetFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPDF, FormatHTML, FormatJPEG, FormatPNG, FormatTXT:
		return true
	}
	return false
}
