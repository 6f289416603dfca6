package main

import (
	"errors"
	"fmt"
	"os"

	docbatch "github.com/avelar/go-docbatch"
	"github.com/avelar/go-docbatch/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all CLI configuration, loadable from a YAML file.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Conversion ConversionConfig `yaml:"conversion"`
	Image      ImageConfig      `yaml:"image"`
	Office     OfficeConfig     `yaml:"office"`
	Browser    BrowserConfig    `yaml:"browser"`
}

// InputConfig defines input discovery options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Patterns   []string `yaml:"patterns"`   // Glob patterns (empty = library defaults)
	Recursive  bool     `yaml:"recursive"`  // Descend into subdirectories
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = "converted")
}

// ConversionConfig defines batch conversion options.
type ConversionConfig struct {
	Format  string `yaml:"format"`  // Target format (default: "pdf")
	Workers int    `yaml:"workers"` // Parallel workers (0 = auto-size from CPUs)
	Timeout string `yaml:"timeout"` // Per-conversion timeout, e.g. "5m"
}

// ImageConfig defines PDF rasterization options.
type ImageConfig struct {
	Format    string `yaml:"format"`    // "jpeg" or "png"
	DPI       int    `yaml:"dpi"`       // Render resolution
	Quality   int    `yaml:"quality"`   // JPEG quality (1-100)
	FirstPage int    `yaml:"firstPage"` // First page to render (0 = from start)
	LastPage  int    `yaml:"lastPage"`  // Last page to render (0 = to end)
}

// OfficeConfig defines office renderer options.
type OfficeConfig struct {
	Path string `yaml:"path"` // Explicit soffice binary (empty = probe known locations)
}

// BrowserConfig defines headless browser options.
type BrowserConfig struct {
	Bin string `yaml:"bin"` // Explicit browser binary (empty = rod's default resolution)
}

// defaultOutputDir is where conversions land when no output is specified.
const defaultOutputDir = "converted"

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	img := docbatch.DefaultImageOptions()
	return &Config{
		Output: OutputConfig{DefaultDir: defaultOutputDir},
		Conversion: ConversionConfig{
			Format: docbatch.FormatPDF,
		},
		Image: ImageConfig{
			Format:  img.Format,
			DPI:     img.DPI,
			Quality: img.Quality,
		},
	}
}

// LoadConfig reads and parses a YAML config file, layered over defaults so
// partial files only override what they mention.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
