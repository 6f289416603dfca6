package docbatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// imageConverter abstracts PDF page rasterization.
type imageConverter interface {
	ToImages(ctx context.Context, pdfPath, outputDir string, opts ImageOptions) ([]string, error)
	PageCount(pdfPath string) (int, error)
}

// pageFilePrefix is the base name rasterized pages are written under.
const pageFilePrefix = "page"

// minPageDigits keeps page indices zero-padded to at least three digits so
// lexicographic order equals page order.
const minPageDigits = 3

// pdftoppmConverter rasterizes PDF pages by shelling out to pdftoppm, the
// same backend the common pdf2image wrappers use.
type pdftoppmConverter struct {
	runner  CommandRunner
	timeout time.Duration
}

// ToImages renders PDF pages into outputDir, one image per page, named
// page_NNN.<format> with zero-padded indices. Honors the optional page range
// in opts. Returns the created paths in page order.
func (c *pdftoppmConverter) ToImages(ctx context.Context, pdfPath, outputDir string, opts ImageOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("PDF file not found: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}

	format := strings.ToLower(opts.Format)

	args := []string{"-" + pdftoppmFlag(format), "-r", strconv.Itoa(opts.DPI)}
	if format == FormatJPEG && opts.Quality > 0 {
		args = append(args, "-jpegopt", "quality="+strconv.Itoa(opts.Quality))
	}
	if opts.FirstPage > 0 {
		args = append(args, "-f", strconv.Itoa(opts.FirstPage))
	}
	if opts.LastPage > 0 {
		args = append(args, "-l", strconv.Itoa(opts.LastPage))
	}
	args = append(args, pdfPath, filepath.Join(outputDir, pageFilePrefix))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, stderr, err := c.runner.Run(ctx, "pdftoppm", args...); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConversionFailed, strings.TrimSpace(stderr), err)
	}

	return collectPageFiles(outputDir, format)
}

// PageCount reads the page count from the PDF structure. When the document
// resists structural parsing, a low-resolution render of the full document
// serves as a slower fallback.
func (c *pdftoppmConverter) PageCount(pdfPath string) (int, error) {
	n, err := api.PageCountFile(pdfPath)
	if err == nil {
		return n, nil
	}

	tmpDir, tmpErr := os.MkdirTemp("", "docbatch-pagecount-*")
	if tmpErr != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	files, renderErr := c.ToImages(ctx, pdfPath, tmpDir, ImageOptions{Format: FormatPNG, DPI: MinDPI})
	if renderErr != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return len(files), nil
}

// pdftoppmFlag maps the target format to the pdftoppm output flag.
func pdftoppmFlag(format string) string {
	if format == FormatPNG {
		return "png"
	}
	return "jpeg"
}

// collectPageFiles renames the tool's prefix-N outputs to the page_NNN
// convention and returns them in page order. pdftoppm pads indices only to
// the width of the highest page number, so the rename also normalizes
// padding to at least minPageDigits.
func collectPageFiles(outputDir, format string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	type pageFile struct {
		page int
		path string
	}

	var pages []pageFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		page, ok := parsePageIndex(e.Name())
		if !ok {
			continue
		}
		pages = append(pages, pageFile{page: page, path: filepath.Join(outputDir, e.Name())})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages rendered", ErrNoPages)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].page < pages[j].page })

	digits := minPageDigits
	if d := len(strconv.Itoa(pages[len(pages)-1].page)); d > digits {
		digits = d
	}

	paths := make([]string, 0, len(pages))
	for _, p := range pages {
		name := fmt.Sprintf("%s_%0*d.%s", pageFilePrefix, digits, p.page, format)
		dst := filepath.Join(outputDir, name)
		if p.path != dst {
			if err := os.Rename(p.path, dst); err != nil {
				return nil, fmt.Errorf("renaming page file: %w", err)
			}
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

// parsePageIndex extracts the page number from a pdftoppm output name such
// as "page-07.jpg". Returns false for files that are not rendered pages.
func parsePageIndex(name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	rest, ok := strings.CutPrefix(base, pageFilePrefix+"-")
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(rest)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
