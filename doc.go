// Package docbatch converts documents between formats (PDF, DOCX, PPTX,
// TXT, HTML, Markdown, page images) by dispatching to external renderers
// and thin format libraries, and runs batch conversions over directories
// in parallel.
//
// Basic usage:
//
//	proc, err := docbatch.NewProcessor(4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer proc.Close()
//
//	summary, err := proc.ConvertDirectory(ctx, "./docs", "./out", docbatch.FormatPDF,
//		docbatch.BatchOptions{Recursive: true})
//
// Single-file conversions go through Converter, created with New. Heavy
// lifting is delegated: office documents render through a headless office
// suite, HTML through a headless browser, and PDF pages rasterize through
// pdftoppm. Per-file failures inside a batch are recorded in the Summary
// and never abort sibling conversions.
package docbatch
