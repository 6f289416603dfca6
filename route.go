package docbatch

import (
	"fmt"
	"strings"
)

// opCode identifies which collaborator a routed conversion dispatches to.
type opCode int

const (
	opOfficePDF    opCode = iota // docx/pptx -> pdf via office renderer
	opOfficeHTML                 // docx -> html via office renderer
	opTextPDF                    // txt -> pdf via PDF builder
	opHTMLPDF                    // html -> pdf via headless browser
	opPDFImages                  // pdf -> jpeg/png, one file per page
	opPDFText                    // pdf -> txt via text extraction
	opMarkdownPDF                // md -> pdf via goldmark + headless browser
	opMarkdownHTML               // md -> html via goldmark
)

// Operation describes a routed conversion: which collaborator handles it and
// whether it produces one output file or a page-indexed set.
type Operation struct {
	InputExt string
	Target   string
	Kind     ResultKind
	code     opCode
}

// routeKey is the lookup key for the routing table.
type routeKey struct {
	ext    string
	target string
}

// routes maps (input extension, target format) pairs to operations.
// Image targets share one entry per extension since jpeg and png follow
// the same rasterization path.
var routes = map[routeKey]opCode{
	{"docx", FormatPDF}:  opOfficePDF,
	{"docx", FormatHTML}: opOfficeHTML,
	{"pptx", FormatPDF}:  opOfficePDF,
	{"txt", FormatPDF}:   opTextPDF,
	{"html", FormatPDF}:  opHTMLPDF,
	{"pdf", FormatJPEG}:  opPDFImages,
	{"pdf", FormatPNG}:   opPDFImages,
	{"pdf", FormatTXT}:   opPDFText,
	{"md", FormatPDF}:    opMarkdownPDF,
	{"md", FormatHTML}:   opMarkdownHTML,
}

// Route selects the conversion operation for an input extension and target
// format. It is a pure lookup with no I/O. The extension may carry a leading
// dot; both arguments are case-insensitive.
func Route(inputExt, targetFormat string) (Operation, error) {
	ext := normalizeExt(inputExt)
	target := strings.ToLower(targetFormat)

	code, ok := routes[routeKey{ext: ext, target: target}]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, ext, target)
	}

	kind := KindSingleFile
	if code == opPDFImages {
		kind = KindMultipleImages
	}

	return Operation{InputExt: ext, Target: target, Kind: kind, code: code}, nil
}

// normalizeExt lowercases an extension and strips a leading dot.
func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
