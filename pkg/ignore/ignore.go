// Package ignore filters deploy and update walks through the glob
// patterns a package configures.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/dotr/pkg/logging"
)

// IsIgnored reports whether relPath is excluded by any pattern. Each
// pattern is tried against the full slash-separated relative path and
// against every individual path segment, so "*.log" catches nested
// logs and ".DS_Store" catches the file at any depth. A pattern
// rooted with "/**" also matches the directory itself, which lets
// walks prune the whole subtree.
func IsIgnored(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel := filepath.ToSlash(relPath)
	segments := strings.Split(rel, "/")

	for _, pattern := range patterns {
		if matches(pattern, rel) {
			return true
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok && matches(dir, rel) {
			return true
		}
		for _, segment := range segments {
			if matches(pattern, segment) {
				return true
			}
		}
	}
	return false
}

func matches(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	if err != nil {
		logger := logging.GetLogger("ignore")
		logger.Warn().
			Str("pattern", pattern).
			Msg("Invalid ignore pattern")
		return false
	}
	return ok
}
