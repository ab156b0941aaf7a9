// Package diff computes read-only differences between a package's
// live destination and what a deploy would write there.
package diff

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/aymanbagabas/go-udiff"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/ignore"
	"github.com/arthur-debert/dotr/pkg/paths"
	"github.com/arthur-debert/dotr/pkg/template"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// Entry is the comparison result for one changed file. Unified holds
// the textual diff from stored (rendered) content to live content, so
// live edits read as additions; Binary marks files whose bytes differ
// but cannot be shown as text.
type Entry struct {
	Source  string
	Dest    string
	Unified string
	Binary  bool
}

// Report collects the changed files of one package. Files that are
// identical, ignored or not deployed yet produce no entry.
type Report struct {
	Package string
	Entries []Entry
}

// HasChanges reports whether any file differs.
func (r Report) HasChanges() bool {
	return len(r.Entries) > 0
}

// Compute compares one package without touching either side.
// Templated sources are rendered first so the comparison runs against
// what a deploy would write, not the raw template text.
func Compute(pkg config.Package, ctx *vars.Context) (Report, error) {
	report := Report{Package: pkg.Name}

	merged, err := ctx.Merged(&pkg)
	if err != nil {
		return report, err
	}
	src, err := paths.Resolve(pkg.Src, ctx.WorkingDir)
	if err != nil {
		return report, err
	}
	dest, err := paths.Resolve(pkg.EffectiveDest(ctx.ProfileName()), ctx.WorkingDir)
	if err != nil {
		return report, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return report, errors.Wrapf(err, errors.ErrIO, "source '%s' of package '%s' is not readable", src, pkg.Name)
	}

	if !srcInfo.IsDir() {
		entry, err := compare(src, dest, merged)
		if err != nil {
			return report, err
		}
		if entry != nil {
			report.Entries = append(report.Entries, *entry)
		}
		return report, nil
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot walk '%s'", path)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "cannot compute relative path")
		}
		if rel == "." {
			return nil
		}
		if ignore.IsIgnored(rel, pkg.Ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		entry, err := compare(path, filepath.Join(dest, rel), merged)
		if err != nil {
			return err
		}
		if entry != nil {
			report.Entries = append(report.Entries, *entry)
		}
		return nil
	})
	return report, err
}

// compare diffs one stored file against its live counterpart. A live
// file that does not exist yet is not a difference, deploy will
// create it and there is nothing to lose.
func compare(srcFile, destFile string, merged map[string]interface{}) (*Entry, error) {
	srcData, err := os.ReadFile(srcFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", srcFile)
	}
	destData, err := os.ReadFile(destFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", destFile)
	}

	want := srcData
	if template.IsTemplatedBytes(srcData) {
		rendered, err := template.Render(string(srcData), merged)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRender, "cannot render '%s'", srcFile)
		}
		want = []byte(rendered)
	}

	if bytes.Equal(destData, want) {
		return nil, nil
	}
	entry := &Entry{Source: srcFile, Dest: destFile}
	if !utf8.Valid(destData) || !utf8.Valid(want) {
		entry.Binary = true
		return entry, nil
	}
	entry.Unified = udiff.Unified(srcFile, destFile, string(want), string(destData))
	return entry, nil
}
