package docbatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/avelar/go-docbatch/internal/fileutil"
)

// htmlRenderer abstracts HTML to PDF rendering to enable testing without a
// browser. The source may be a local file path or an http(s) URL.
type htmlRenderer interface {
	RenderPDF(ctx context.Context, source, outputPath string) (string, error)
	Close() error
}

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.5
)

// rodRenderer implements htmlRenderer using go-rod. Rod automatically
// downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	bin     string
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout. An empty bin
// defers browser resolution to rod's launcher.
func newRodRenderer(bin string, timeout time.Duration) *rodRenderer {
	return &rodRenderer{bin: bin, timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := r.bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderPDF opens the source in headless Chrome, prints it to PDF, and writes
// the result to outputPath. Returns explicit errors instead of panicking when
// browser operations fail.
func (r *rodRenderer) RenderPDF(ctx context.Context, source, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := r.ensureBrowser(); err != nil {
		return "", err
	}

	url, err := sourceURL(source)
	if err != nil {
		return "", err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Honor a context deadline tighter than the configured timeout
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("writing PDF file: %w", err)
	}

	return outputPath, nil
}

// sourceURL turns a local path into a file:// URL and passes http(s) URLs
// through unchanged. Local files must exist before the browser navigates,
// since Chrome reports a generic load error otherwise.
func sourceURL(source string) (string, error) {
	if fileutil.IsURL(source) {
		return source, nil
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolving source path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("HTML source not found: %w", err)
	}
	return "file://" + abs, nil
}

func floatPtr(f float64) *float64 { return &f }
