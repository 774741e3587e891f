package source

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandGlobs expands glob patterns, rooted at baseDir when they are
// relative, into a sorted, deduplicated list of matching file paths.
// Patterns that match nothing contribute nothing; a job that never wrote a
// particular log kind is normal, not an error.
func ExpandGlobs(baseDir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		p := pattern
		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}

		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	// Sorted so "first match" is deterministic across runs.
	sort.Strings(files)

	return files, nil
}
