package main

import (
	"fmt"
	"sort"
	"strings"

	docbatch "github.com/avelar/go-docbatch"
)

// runFormats prints the supported conversion pairs.
func runFormats(env *Environment) {
	formats := docbatch.SupportedFormats()

	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	fmt.Fprintln(env.Stdout, "Supported conversions:")
	for _, ext := range exts {
		targets := formats[ext]
		sort.Strings(targets)
		fmt.Fprintf(env.Stdout, "  .%-5s -> %s\n", ext, strings.Join(targets, ", "))
	}
}
