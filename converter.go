package docbatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avelar/go-docbatch/internal/fileutil"
)

// Compile-time interface implementation checks.
var (
	_ officeConverter   = (*officeRenderer)(nil)
	_ htmlRenderer      = (*rodRenderer)(nil)
	_ textConverter     = (*marotoTextConverter)(nil)
	_ imageConverter    = (*pdftoppmConverter)(nil)
	_ textExtractor     = (*pdfTextExtractor)(nil)
	_ markdownConverter = (*goldmarkConverter)(nil)
	_ CommandRunner     = (*ExecRunner)(nil)
)

// imageDirSuffix names the per-input subdirectory for page image fan-out.
const imageDirSuffix = "_images"

// Converter routes single-file conversions to the format collaborators:
// an office-suite headless renderer, a headless browser, a PDF builder, a
// page rasterizer, and a text extractor. Create with New, use the conversion
// methods or ConvertFile, and Close when done.
//
// A Converter may be shared across goroutines for everything except office
// conversions; the batch layer pools Converters so each worker owns one.
type Converter struct {
	cfg      converterConfig
	office   officeConverter
	htmlPDF  htmlRenderer
	textPDF  textConverter
	images   imageConverter
	pdfText  textExtractor
	markdown markdownConverter
}

// New creates a Converter with default configuration. The office renderer
// executable is resolved and probed here: a missing renderer fails
// construction with ErrRendererUnavailable rather than degrading later,
// mid-batch.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			image:   DefaultImageOptions(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	runner := &ExecRunner{}

	// Create collaborators if not injected (e.g., by tests)
	if c.office == nil {
		office, err := newOfficeRenderer(c.cfg.officePath, c.cfg.timeout, runner)
		if err != nil {
			return nil, err
		}
		c.office = office
	}
	if c.htmlPDF == nil {
		c.htmlPDF = newRodRenderer(c.cfg.browserBin, c.cfg.timeout)
	}
	if c.textPDF == nil {
		c.textPDF = &marotoTextConverter{}
	}
	if c.images == nil {
		c.images = &pdftoppmConverter{runner: runner, timeout: c.cfg.timeout}
	}
	if c.pdfText == nil {
		c.pdfText = &pdfTextExtractor{}
	}
	if c.markdown == nil {
		c.markdown = newGoldmarkConverter()
	}

	return c, nil
}

// Close releases renderer resources (office profile, headless browser).
func (c *Converter) Close() error {
	var firstErr error
	if c.office != nil {
		firstErr = c.office.Close()
	}
	if c.htmlPDF != nil {
		if err := c.htmlPDF.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ConvertFile executes one task: route by extension and target, invoke the
// collaborator, and fold any error into the returned Result. Errors never
// escape the task boundary; the Result carries them instead.
func (c *Converter) ConvertFile(ctx context.Context, task Task) Result {
	start := time.Now()
	result := Result{
		InputPath: task.InputPath,
		Format:    task.TargetFormat,
	}

	op, err := Route(filepath.Ext(task.InputPath), task.TargetFormat)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Kind = op.Kind

	if op.Kind == KindMultipleImages {
		imageDir := filepath.Join(task.OutputDir, stem(task.InputPath)+imageDirSuffix)
		opts := c.cfg.image
		opts.Format = op.Target

		paths, err := c.images.ToImages(ctx, task.InputPath, imageDir, opts)
		result.OutputPaths = paths
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	outputPath := filepath.Join(task.OutputDir, stem(task.InputPath)+"."+op.Target)
	path, err := c.dispatchSingle(ctx, op, task.InputPath, outputPath)
	if err != nil {
		result.Err = err
	} else {
		result.OutputPaths = []string{path}
	}
	result.Duration = time.Since(start)
	return result
}

// dispatchSingle invokes the collaborator for a single-output operation.
func (c *Converter) dispatchSingle(ctx context.Context, op Operation, inputPath, outputPath string) (string, error) {
	switch op.code {
	case opOfficePDF:
		return c.office.ToPDF(ctx, inputPath, outputPath)
	case opOfficeHTML:
		return c.office.ToHTML(ctx, inputPath, outputPath)
	case opTextPDF:
		return c.textPDF.ToPDF(ctx, inputPath, outputPath)
	case opHTMLPDF:
		return c.htmlPDF.RenderPDF(ctx, inputPath, outputPath)
	case opPDFText:
		return c.pdfText.ToText(ctx, inputPath, outputPath)
	case opMarkdownPDF:
		return c.markdownToPDF(ctx, inputPath, outputPath)
	case opMarkdownHTML:
		return c.markdownToHTML(ctx, inputPath, outputPath)
	default:
		return "", fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, op.InputExt, op.Target)
	}
}

// DocxToPDF converts a DOCX file to PDF via the office renderer.
func (c *Converter) DocxToPDF(ctx context.Context, docxPath, outputPath string) (string, error) {
	return c.office.ToPDF(ctx, docxPath, outputPath)
}

// PptxToPDF converts a PPTX file to PDF. The office renderer handles
// presentations through the same headless conversion path as documents.
func (c *Converter) PptxToPDF(ctx context.Context, pptxPath, outputPath string) (string, error) {
	return c.office.ToPDF(ctx, pptxPath, outputPath)
}

// DocxToHTML converts a DOCX file to HTML via the office renderer.
func (c *Converter) DocxToHTML(ctx context.Context, docxPath, outputPath string) (string, error) {
	return c.office.ToHTML(ctx, docxPath, outputPath)
}

// TxtToPDF converts a plain-text file to PDF.
func (c *Converter) TxtToPDF(ctx context.Context, txtPath, outputPath string) (string, error) {
	return c.textPDF.ToPDF(ctx, txtPath, outputPath)
}

// HTMLToPDF renders an HTML file or URL to PDF in a headless browser.
func (c *Converter) HTMLToPDF(ctx context.Context, source, outputPath string) (string, error) {
	return c.htmlPDF.RenderPDF(ctx, source, outputPath)
}

// PDFToImages rasterizes PDF pages into outputDir, returning the created
// image paths in page order.
func (c *Converter) PDFToImages(ctx context.Context, pdfPath, outputDir string, opts ImageOptions) ([]string, error) {
	return c.images.ToImages(ctx, pdfPath, outputDir, opts)
}

// PDFPageCount returns the number of pages in a PDF.
func (c *Converter) PDFPageCount(pdfPath string) (int, error) {
	return c.images.PageCount(pdfPath)
}

// PDFToText extracts the text layer of a PDF into a text file.
func (c *Converter) PDFToText(ctx context.Context, pdfPath, outputPath string) (string, error) {
	return c.pdfText.ToText(ctx, pdfPath, outputPath)
}

// MarkdownToHTML converts a Markdown file to a standalone HTML file.
func (c *Converter) MarkdownToHTML(ctx context.Context, mdPath, outputPath string) (string, error) {
	return c.markdownToHTML(ctx, mdPath, outputPath)
}

// MarkdownToPDF converts a Markdown file to PDF by rendering the generated
// HTML in the headless browser.
func (c *Converter) MarkdownToPDF(ctx context.Context, mdPath, outputPath string) (string, error) {
	return c.markdownToPDF(ctx, mdPath, outputPath)
}

// SupportedFormats lists input extensions and the targets each can reach.
func SupportedFormats() map[string][]string {
	formats := make(map[string][]string)
	for key := range routes {
		formats[key.ext] = append(formats[key.ext], key.target)
	}
	return formats
}

func (c *Converter) markdownToHTML(ctx context.Context, mdPath, outputPath string) (string, error) {
	htmlContent, err := c.renderMarkdown(ctx, mdPath)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputPath, []byte(htmlContent), 0o644); err != nil {
		return "", fmt.Errorf("writing HTML file: %w", err)
	}
	return outputPath, nil
}

func (c *Converter) markdownToPDF(ctx context.Context, mdPath, outputPath string) (string, error) {
	htmlContent, err := c.renderMarkdown(ctx, mdPath)
	if err != nil {
		return "", err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return "", err
	}
	defer cleanup()

	return c.htmlPDF.RenderPDF(ctx, tmpPath, outputPath)
}

func (c *Converter) renderMarkdown(ctx context.Context, mdPath string) (string, error) {
	content, err := os.ReadFile(mdPath) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("reading markdown file: %w", err)
	}
	return c.markdown.ToHTML(ctx, string(content))
}
