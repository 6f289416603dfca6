package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type testConfig struct {
	Workers int    `yaml:"workers"`
	Format  string `yaml:"format"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	data := []byte("workers: 4\nformat: pdf\n")

	if err := UnmarshalStrict(data, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 4 || cfg.Format != "pdf" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestUnmarshalStrictRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	data := []byte("workers: 4\nworkrs: 8\n")

	if err := UnmarshalStrict(data, &cfg); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestUnmarshalStrictValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "nil data", data: nil, dest: &testConfig{}, wantErr: ErrNilData},
		{name: "empty data", data: []byte{}, dest: &testConfig{}, wantErr: ErrNilData},
		{name: "nil destination", data: []byte("a: 1"), dest: nil, wantErr: ErrNilDestination},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := UnmarshalStrict(tt.data, tt.dest); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnmarshalStrictInputTooLarge(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	data := []byte("format: " + strings.Repeat("x", MaxInputSize))

	if err := UnmarshalStrict(data, &cfg); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("error = %v, want %v", err, ErrInputTooLarge)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := testConfig{Workers: 2, Format: "png"}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out testConfig
	if err := UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
