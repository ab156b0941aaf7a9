package deploy

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/ignore"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/paths"
	"github.com/arthur-debert/dotr/pkg/template"
)

// Update copies live edits back into the package's stored source.
//
// A templated package is skipped outright, the stored template is the
// source of truth and must never be overwritten with rendered output.
// Backup files and ignored paths are excluded from the walk, and a
// stored file is only rewritten when its content actually changed.
func (e *Engine) Update(pkg config.Package) error {
	logger := logging.GetLogger("update")

	src, err := paths.Resolve(pkg.Src, e.ctx.WorkingDir)
	if err != nil {
		return err
	}
	templated, err := template.PackageIsTemplated(src)
	if err != nil {
		return err
	}
	if templated {
		fmt.Fprintf(e.out, "Skipping templated package '%s'\n", pkg.Name)
		return nil
	}

	dest, err := paths.Resolve(pkg.EffectiveDest(e.ctx.ProfileName()), e.ctx.WorkingDir)
	if err != nil {
		return err
	}
	destInfo, err := os.Stat(dest)
	if os.IsNotExist(err) {
		fmt.Fprintf(e.out, "Skipping package '%s', '%s' does not exist\n", pkg.Name, dest)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot inspect '%s'", dest)
	}

	logger.Info().Str("package", pkg.Name).Str("dest", dest).Str("src", src).Msg("Updating package")

	if destInfo.IsDir() {
		return e.updateTree(dest, src, pkg)
	}
	return e.updateFile(dest, src, destInfo.Mode().Perm())
}

func (e *Engine) updateTree(dest, src string, pkg config.Package) error {
	return filepath.WalkDir(dest, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot walk '%s'", path)
		}
		rel, err := filepath.Rel(dest, path)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "cannot compute relative path")
		}
		if rel == "." {
			return nil
		}
		if paths.IsBackupPath(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
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
		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot inspect '%s'", path)
		}
		return e.updateFile(path, filepath.Join(src, rel), info.Mode().Perm())
	})
}

// updateFile writes one live file into the store unless the stored
// copy already has identical content.
func (e *Engine) updateFile(destFile, srcFile string, perm fs.FileMode) error {
	data, err := os.ReadFile(destFile)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", destFile)
	}

	existing, err := os.ReadFile(srcFile)
	if err == nil && bytes.Equal(existing, data) {
		fmt.Fprintf(e.out, "Skipping unchanged '%s'\n", srcFile)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(srcFile), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create '%s'", filepath.Dir(srcFile))
	}
	if err := os.WriteFile(srcFile, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write '%s'", srcFile)
	}
	fmt.Fprintf(e.out, "Updated '%s'\n", srcFile)
	return nil
}
