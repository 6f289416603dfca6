package docbatch

import (
	"errors"
	"testing"
)

func TestRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ext      string
		target   string
		wantKind ResultKind
		wantErr  error
	}{
		{
			name:     "docx to pdf uses office renderer",
			ext:      "docx",
			target:   "pdf",
			wantKind: KindSingleFile,
		},
		{
			name:     "docx to html",
			ext:      "docx",
			target:   "html",
			wantKind: KindSingleFile,
		},
		{
			name:     "pptx to pdf",
			ext:      "pptx",
			target:   "pdf",
			wantKind: KindSingleFile,
		},
		{
			name:     "txt to pdf",
			ext:      "txt",
			target:   "pdf",
			wantKind: KindSingleFile,
		},
		{
			name:     "html to pdf",
			ext:      "html",
			target:   "pdf",
			wantKind: KindSingleFile,
		},
		{
			name:     "pdf to jpeg fans out per page",
			ext:      "pdf",
			target:   "jpeg",
			wantKind: KindMultipleImages,
		},
		{
			name:     "pdf to png fans out per page",
			ext:      "pdf",
			target:   "png",
			wantKind: KindMultipleImages,
		},
		{
			name:     "pdf to txt extracts text",
			ext:      "pdf",
			target:   "txt",
			wantKind: KindSingleFile,
		},
		{
			name:     "markdown to pdf",
			ext:      "md",
			target:   "pdf",
			wantKind: KindSingleFile,
		},
		{
			name:     "markdown to html",
			ext:      "md",
			target:   "html",
			wantKind: KindSingleFile,
		},
		{
			name:     "leading dot is stripped",
			ext:      ".docx",
			target:   "pdf",
			wantKind: KindSingleFile,
		},
		{
			name:     "extension is case-insensitive",
			ext:      "DOCX",
			target:   "PDF",
			wantKind: KindSingleFile,
		},
		{
			name:    "docx to jpeg is unsupported",
			ext:     "docx",
			target:  "jpeg",
			wantErr: ErrUnsupportedConversion,
		},
		{
			name:    "pdf to pdf is unsupported",
			ext:     "pdf",
			target:  "pdf",
			wantErr: ErrUnsupportedConversion,
		},
		{
			name:    "pptx to html is unsupported",
			ext:     "pptx",
			target:  "html",
			wantErr: ErrUnsupportedConversion,
		},
		{
			name:    "txt to jpeg is unsupported",
			ext:     "txt",
			target:  "jpeg",
			wantErr: ErrUnsupportedConversion,
		},
		{
			name:    "unknown extension",
			ext:     "xlsx",
			target:  "pdf",
			wantErr: ErrUnsupportedConversion,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			op, err := Route(tt.ext, tt.target)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if op.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", op.Kind, tt.wantKind)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	t.Parallel()

	formats := SupportedFormats()

	for _, ext := range []string{"pdf", "docx", "pptx", "txt", "html", "md"} {
		if len(formats[ext]) == 0 {
			t.Errorf("no targets listed for %q", ext)
		}
	}
}
