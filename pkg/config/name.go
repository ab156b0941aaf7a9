package config

import (
	"path/filepath"
	"strings"
)

// PackageName derives the store name for an imported path. Leading
// dots are stripped, anything after the last dash is dropped, the
// remaining dashes and dots become underscores, and the result is
// prefixed with "d_" for directories or "f_" for files. So ".zshrc"
// imports as "f_zshrc", "test.conf" as "f_test_conf" and a directory
// ".tmux-2.4" as "d_tmux".
func PackageName(path string, isDir bool) string {
	name := filepath.Base(filepath.Clean(path))
	name = strings.TrimLeft(name, ".")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = name[:i]
	}
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	if isDir {
		return "d_" + name
	}
	return "f_" + name
}
