package docbatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// stubOffice fakes the office renderer. Inputs listed in failFor fail with
// failErr; everything else "succeeds" by creating the output file.
type stubOffice struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]error
	delay   time.Duration
}

func (s *stubOffice) convert(inputPath, outputPath string) (string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.calls = append(s.calls, inputPath)
	err, shouldFail := s.failFor[filepath.Base(inputPath)]
	s.mu.Unlock()

	if shouldFail {
		return "", err
	}
	if writeErr := os.WriteFile(outputPath, []byte("%PDF-fake"), 0o644); writeErr != nil {
		return "", writeErr
	}
	return outputPath, nil
}

func (s *stubOffice) ToPDF(_ context.Context, inputPath, outputPath string) (string, error) {
	return s.convert(inputPath, outputPath)
}

func (s *stubOffice) ToHTML(_ context.Context, inputPath, outputPath string) (string, error) {
	return s.convert(inputPath, outputPath)
}

func (s *stubOffice) Close() error { return nil }

// stubHTMLRenderer fakes the headless browser.
type stubHTMLRenderer struct {
	err error
}

func (s *stubHTMLRenderer) RenderPDF(_ context.Context, _, outputPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if err := os.WriteFile(outputPath, []byte("%PDF-fake"), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func (s *stubHTMLRenderer) Close() error { return nil }

// stubTextConverter fakes text to PDF conversion.
type stubTextConverter struct {
	err error
}

func (s *stubTextConverter) ToPDF(_ context.Context, _, outputPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if err := os.WriteFile(outputPath, []byte("%PDF-fake"), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// stubImageConverter fakes rasterization by creating pages page files.
type stubImageConverter struct {
	pages int
	err   error
}

func (s *stubImageConverter) ToImages(_ context.Context, _, outputDir string, opts ImageOptions) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, err
	}
	paths := make([]string, 0, s.pages)
	for i := 1; i <= s.pages; i++ {
		name := fmt.Sprintf("page_%03d.%s", i, opts.Format)
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *stubImageConverter) PageCount(string) (int, error) {
	return s.pages, s.err
}

// stubTextExtractor fakes PDF text extraction.
type stubTextExtractor struct {
	err error
}

func (s *stubTextExtractor) ToText(_ context.Context, _, outputPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if err := os.WriteFile(outputPath, []byte("text"), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// newStubConverter assembles a Converter backed entirely by stubs.
func newStubConverter(office *stubOffice) *Converter {
	if office == nil {
		office = &stubOffice{}
	}
	return &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			image:   DefaultImageOptions(),
		},
		office:   office,
		htmlPDF:  &stubHTMLRenderer{},
		textPDF:  &stubTextConverter{},
		images:   &stubImageConverter{pages: 2},
		pdfText:  &stubTextExtractor{},
		markdown: newGoldmarkConverter(),
	}
}

// newStubProcessor wires a Processor whose pool hands out stub-backed
// converters, sized at maxWorkers.
func newStubProcessor(maxWorkers int, conv *Converter) *Processor {
	pool := NewConverterPool(maxWorkers)
	pool.newFn = func() (*Converter, error) { return conv, nil }
	return &Processor{pool: pool, maxWorkers: maxWorkers}
}

// writeTestFile creates a file with throwaway content, creating parent
// directories as needed.
func writeTestFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("content"), 0o644)
}
