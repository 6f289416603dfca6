package docbatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// officeConverter abstracts the office-suite renderer to allow fakes in tests.
type officeConverter interface {
	ToPDF(ctx context.Context, inputPath, outputPath string) (string, error)
	ToHTML(ctx context.Context, inputPath, outputPath string) (string, error)
	Close() error
}

// officeFallbackPaths are probed in order when no explicit executable is
// configured. The first binary answering --version wins.
var officeFallbackPaths = []string{
	"soffice",
	"libreoffice",
	"/usr/bin/soffice",
	"/usr/bin/libreoffice",
	"/opt/libreoffice/program/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
}

// probeTimeout bounds the --version check at construction.
const probeTimeout = 10 * time.Second

// officeRenderer converts office documents by shelling out to a headless
// office suite. Each instance owns a private user-profile directory so that
// pooled instances can run concurrently; stock LibreOffice serializes on a
// shared profile otherwise.
type officeRenderer struct {
	bin        string
	runner     CommandRunner
	profileDir string
	timeout    time.Duration
}

// newOfficeRenderer resolves and probes the office executable, failing fast
// with ErrRendererUnavailable when none is found.
func newOfficeRenderer(explicitPath string, timeout time.Duration, runner CommandRunner) (*officeRenderer, error) {
	bin, err := resolveOfficeBin(explicitPath, runner)
	if err != nil {
		return nil, err
	}

	profileDir, err := os.MkdirTemp("", "docbatch-office-*")
	if err != nil {
		return nil, fmt.Errorf("creating office profile dir: %w", err)
	}

	return &officeRenderer{
		bin:        bin,
		runner:     runner,
		profileDir: profileDir,
		timeout:    timeout,
	}, nil
}

// resolveOfficeBin probes the explicit path if given, otherwise walks the
// fallback list. Absence is a construction-time failure, not a silent
// degradation at conversion time.
func resolveOfficeBin(explicitPath string, runner CommandRunner) (string, error) {
	candidates := officeFallbackPaths
	if explicitPath != "" {
		candidates = []string{explicitPath}
	}

	for _, bin := range candidates {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		_, _, err := runner.Run(ctx, bin, "--version")
		cancel()
		if err == nil {
			return bin, nil
		}
	}

	return "", fmt.Errorf("%w: office suite not found (tried %s)",
		ErrRendererUnavailable, strings.Join(candidates, ", "))
}

// ToPDF converts a DOCX or PPTX file to PDF.
func (r *officeRenderer) ToPDF(ctx context.Context, inputPath, outputPath string) (string, error) {
	return r.convert(ctx, inputPath, outputPath, "pdf")
}

// ToHTML converts a DOCX file to HTML.
func (r *officeRenderer) ToHTML(ctx context.Context, inputPath, outputPath string) (string, error) {
	return r.convert(ctx, inputPath, outputPath, "html")
}

// convert runs the headless renderer. The suite names its output after the
// input stem inside --outdir, so the result is renamed when the requested
// output path differs.
func (r *officeRenderer) convert(ctx context.Context, inputPath, outputPath, filter string) (string, error) {
	outDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, stderr, err := r.runner.Run(ctx, r.bin,
		"--headless",
		"-env:UserInstallation=file://"+r.profileDir,
		"--convert-to", filter,
		"--outdir", outDir,
		inputPath,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrConversionFailed, strings.TrimSpace(stderr), err)
	}

	generated := filepath.Join(outDir, stem(inputPath)+"."+filter)
	if generated != outputPath {
		if renameErr := os.Rename(generated, outputPath); renameErr != nil {
			return "", fmt.Errorf("%w: renaming output: %v", ErrConversionFailed, renameErr)
		}
	}

	if _, statErr := os.Stat(outputPath); statErr != nil {
		return "", fmt.Errorf("%w: output was not created: %s", ErrConversionFailed, outputPath)
	}

	return outputPath, nil
}

// Close removes the private profile directory.
func (r *officeRenderer) Close() error {
	if r.profileDir == "" {
		return nil
	}
	err := os.RemoveAll(r.profileDir)
	r.profileDir = ""
	return err
}

// stem returns the file base name without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
