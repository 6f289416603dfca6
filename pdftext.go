package docbatch

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// textExtractor abstracts PDF plain-text extraction.
type textExtractor interface {
	ToText(ctx context.Context, pdfPath, outputPath string) (string, error)
}

// pdfTextExtractor pulls the text layer out of a PDF. Scanned documents
// without a text layer yield an empty output file rather than an error.
type pdfTextExtractor struct{}

// ToText extracts the plain text of a PDF into a UTF-8 text file.
func (e *pdfTextExtractor) ToText(ctx context.Context, pdfPath, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: opening PDF: %v", ErrConversionFailed, err)
	}
	defer func() { _ = f.Close() }()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extracting text: %v", ErrConversionFailed, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: reading text stream: %v", ErrConversionFailed, err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing text file: %w", err)
	}
	return outputPath, nil
}
