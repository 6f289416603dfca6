package docbatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// textConverter abstracts plain-text to PDF conversion.
type textConverter interface {
	ToPDF(ctx context.Context, inputPath, outputPath string) (string, error)
}

// Text layout constants.
const (
	textFontSize   = 11
	textRowHeight  = 5
	textWrapColumn = 90 // characters per line before a hard wrap
)

// marotoTextConverter builds a PDF from plain text programmatically.
type marotoTextConverter struct{}

// ToPDF reads a text file and renders it line by line into a PDF document.
// Long lines are hard-wrapped so nothing is lost off the page edge.
func (c *marotoTextConverter) ToPDF(ctx context.Context, inputPath, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	doc, err := buildTextDocument(string(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := doc.Save(outputPath); err != nil {
		return "", fmt.Errorf("writing PDF file: %w", err)
	}
	return outputPath, nil
}

// buildTextDocument lays out the text content into a generated PDF document.
func buildTextDocument(content string) (core.Document, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		WithBottomMargin(15).
		Build()

	m := maroto.New(cfg)

	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		for _, wrapped := range wrapLine(line, textWrapColumn) {
			m.AddRows(text.NewRow(textRowHeight, wrapped, props.Text{
				Size:   textFontSize,
				Family: fontfamily.Courier,
			}))
		}
	}

	return m.Generate()
}

// normalizeNewlines converts Windows and old-Mac line endings to \n.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// wrapLine hard-wraps a line at width runes. An empty line yields one empty
// segment so blank lines keep their vertical space.
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var segments []string
	for len(runes) > width {
		segments = append(segments, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		segments = append(segments, string(runes))
	}
	return segments
}
