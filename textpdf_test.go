package docbatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrapLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{
			name:  "short line untouched",
			line:  "hello",
			width: 10,
			want:  []string{"hello"},
		},
		{
			name:  "empty line kept",
			line:  "",
			width: 10,
			want:  []string{""},
		},
		{
			name:  "exact width untouched",
			line:  "abcde",
			width: 5,
			want:  []string{"abcde"},
		},
		{
			name:  "long line split",
			line:  "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:  "multibyte runes counted as one",
			line:  "éééééé",
			width: 3,
			want:  []string{"ééé", "ééé"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := wrapLine(tt.line, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "windows", in: "a\r\nb", want: "a\nb"},
		{name: "old mac", in: "a\rb", want: "a\nb"},
		{name: "mixed", in: "a\r\nb\rc\nd", want: "a\nb\nc\nd"},
		{name: "unix untouched", in: "a\nb", want: "a\nb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := normalizeNewlines(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextToPDFWritesFile(t *testing.T) {
	t.Parallel()

	inputPath := filepath.Join(t.TempDir(), "notes.txt")
	content := "first line\r\nsecond line\n\n" + strings.Repeat("x", 200) + "\n"
	if err := os.WriteFile(inputPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	outputPath := filepath.Join(t.TempDir(), "notes.pdf")

	conv := &marotoTextConverter{}
	got, err := conv.ToPDF(context.Background(), inputPath, outputPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != outputPath {
		t.Errorf("returned path = %q, want %q", got, outputPath)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}

func TestTextToPDFMissingInput(t *testing.T) {
	t.Parallel()

	conv := &marotoTextConverter{}
	outputPath := filepath.Join(t.TempDir(), "out.pdf")

	if _, err := conv.ToPDF(context.Background(), "does-not-exist.txt", outputPath); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestTextToPDFCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &marotoTextConverter{}
	_, err := conv.ToPDF(ctx, "anything.txt", filepath.Join(t.TempDir(), "out.pdf"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
