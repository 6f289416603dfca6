package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // DOCBATCH_CONFIG: config file path
	InputDir   string // DOCBATCH_INPUT_DIR: default input directory
	OutputDir  string // DOCBATCH_OUTPUT_DIR: default output directory
	Format     string // DOCBATCH_FORMAT: target format
	Timeout    string // DOCBATCH_TIMEOUT: per-conversion timeout
	OfficePath string // DOCBATCH_OFFICE_PATH: soffice binary
	BrowserBin string // DOCBATCH_BROWSER_BIN: browser binary
	Workers    int    // DOCBATCH_WORKERS: parallel workers
	DPI        int    // DOCBATCH_DPI: image render resolution
}

// knownEnvVars lists valid DOCBATCH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCBATCH_CONFIG":      true,
	"DOCBATCH_INPUT_DIR":   true,
	"DOCBATCH_OUTPUT_DIR":  true,
	"DOCBATCH_FORMAT":      true,
	"DOCBATCH_TIMEOUT":     true,
	"DOCBATCH_OFFICE_PATH": true,
	"DOCBATCH_BROWSER_BIN": true,
	"DOCBATCH_WORKERS":     true,
	"DOCBATCH_DPI":         true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOCBATCH_CONFIG"),
		InputDir:   os.Getenv("DOCBATCH_INPUT_DIR"),
		OutputDir:  os.Getenv("DOCBATCH_OUTPUT_DIR"),
		Format:     os.Getenv("DOCBATCH_FORMAT"),
		Timeout:    os.Getenv("DOCBATCH_TIMEOUT"),
		OfficePath: os.Getenv("DOCBATCH_OFFICE_PATH"),
		BrowserBin: os.Getenv("DOCBATCH_BROWSER_BIN"),
	}

	if workers := os.Getenv("DOCBATCH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if dpi := os.Getenv("DOCBATCH_DPI"); dpi != "" {
		if d, err := strconv.Atoi(dpi); err == nil && d > 0 {
			cfg.DPI = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCBATCH_* variables.
// Helps catch typos like DOCBATCH_WORKRS instead of DOCBATCH_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DOCBATCH_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values the config left empty/zero, so the precedence is:
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == defaultOutputDir {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Format != "" && cfg.Conversion.Format == DefaultConfig().Conversion.Format {
		cfg.Conversion.Format = env.Format
	}
	if env.Timeout != "" && cfg.Conversion.Timeout == "" {
		cfg.Conversion.Timeout = env.Timeout
	}
	if env.OfficePath != "" && cfg.Office.Path == "" {
		cfg.Office.Path = env.OfficePath
	}
	if env.BrowserBin != "" && cfg.Browser.Bin == "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.Workers > 0 && cfg.Conversion.Workers == 0 {
		cfg.Conversion.Workers = env.Workers
	}
	if env.DPI > 0 && cfg.Image.DPI == DefaultConfig().Image.DPI {
		cfg.Image.DPI = env.DPI
	}
}
