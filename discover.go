package docbatch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// DefaultPatterns match the supported input formats when no patterns are given.
var DefaultPatterns = []string{"*.pdf", "*.docx", "*.pptx", "*.txt", "*.html"}

// Discover finds files under root whose base name matches any of the glob
// patterns. With recursive set, patterns match at any depth; otherwise only
// files directly inside root are considered. The result is deduplicated (a
// file matching two patterns appears once) and sorted lexicographically, so
// repeated runs over an unchanged directory yield the same order.
//
// A missing or non-directory root fails with ErrDirectoryNotFound. Zero
// matches is not an error; an empty list is returned.
func Discover(root string, patterns []string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}

	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}

	var files []string
	if recursive {
		files, err = walkMatches(root, patterns)
	} else {
		files, err = listMatches(root, patterns)
	}
	if err != nil {
		return nil, err
	}

	files = lo.Uniq(files)
	sort.Strings(files)
	return files, nil
}

// validatePatterns rejects malformed glob patterns before any walking starts,
// since filepath.Match only reports ErrBadPattern when it reaches the broken
// part of a pattern.
func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := filepath.Match(p, "probe"); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	return nil
}

// walkMatches collects matching files at any depth under root.
func walkMatches(root string, patterns []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if matchesAny(patterns, d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// listMatches collects matching files directly inside root.
func listMatches(root string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		if matchesAny(patterns, e.Name()) {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	return files, nil
}

// matchesAny reports whether name matches at least one pattern.
// Patterns are pre-validated, so Match cannot fail here.
func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
