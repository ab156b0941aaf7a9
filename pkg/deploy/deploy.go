// Package deploy implements the two directions of syncing a package:
// deploy copies the stored source to its live destination behind a
// rename backup, update folds live edits back into the store.
package deploy

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/ignore"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/paths"
	"github.com/arthur-debert/dotr/pkg/shell"
	"github.com/arthur-debert/dotr/pkg/template"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// Engine runs deploy and update for resolved packages. Progress
// messages go to out; pass nil to silence them.
type Engine struct {
	cfg *config.Config
	ctx *vars.Context
	out io.Writer
}

// New builds an engine over one variable context.
func New(cfg *config.Config, ctx *vars.Context, out io.Writer) *Engine {
	if out == nil {
		out = io.Discard
	}
	return &Engine{cfg: cfg, ctx: ctx, out: out}
}

// Deploy copies one package from the store to its live destination.
//
// Order matters: pre actions run first, then the previous live state
// is moved aside by renaming it to the backup path, then every
// non-ignored file is written (rendered when templated, verbatim
// otherwise), then post actions run. The rename happens before any
// write so the prior state stays recoverable even if the copy dies
// halfway.
func (e *Engine) Deploy(pkg config.Package) error {
	logger := logging.GetLogger("deploy")
	merged, err := e.ctx.Merged(&pkg)
	if err != nil {
		return err
	}

	for _, action := range pkg.PreActions {
		if err := shell.RunAction(context.Background(), action, merged, e.ctx.WorkingDir); err != nil {
			return err
		}
	}

	src, err := paths.Resolve(pkg.Src, e.ctx.WorkingDir)
	if err != nil {
		return err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "source '%s' of package '%s' is not readable", src, pkg.Name)
	}

	dest, err := paths.Resolve(pkg.EffectiveDest(e.ctx.ProfileName()), e.ctx.WorkingDir)
	if err != nil {
		return err
	}

	if err := e.backupDest(dest); err != nil {
		return err
	}

	logger.Info().Str("package", pkg.Name).Str("src", src).Str("dest", dest).Msg("Deploying package")

	if srcInfo.IsDir() {
		err = e.deployTree(src, dest, pkg, merged)
	} else {
		err = e.deployFile(src, dest, srcInfo.Mode().Perm(), merged)
	}
	if err != nil {
		return err
	}

	for _, action := range pkg.PostActions {
		if err := shell.RunAction(context.Background(), action, merged, e.ctx.WorkingDir); err != nil {
			return err
		}
	}
	return nil
}

// backupDest moves the current live state aside by renaming it to the
// backup path. A stale backup directory is removed first so the
// rename cannot collide; a stale backup file is simply replaced by
// the rename itself.
func (e *Engine) backupDest(dest string) error {
	if _, err := os.Lstat(dest); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrIO, "cannot inspect '%s'", dest)
	}

	backup := paths.BackupPath(dest)
	if info, err := os.Lstat(backup); err == nil && info.IsDir() {
		if err := os.RemoveAll(backup); err != nil {
			return errors.Wrapf(err, errors.ErrBackupConflict, "cannot remove stale backup '%s'", backup)
		}
	}
	if err := os.Rename(dest, backup); err != nil {
		return errors.Wrapf(err, errors.ErrBackupConflict, "cannot back up '%s' to '%s'", dest, backup)
	}
	fmt.Fprintf(e.out, "Backed up '%s' to '%s'\n", dest, backup)
	return nil
}

func (e *Engine) deployTree(src, dest string, pkg config.Package, merged map[string]interface{}) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
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
		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot inspect '%s'", path)
		}
		return e.deployFile(path, filepath.Join(dest, rel), info.Mode().Perm(), merged)
	})
}

// deployFile writes one stored file to its destination, rendering it
// when it is a text file with template markers and copying the bytes
// untouched otherwise.
func (e *Engine) deployFile(srcFile, destFile string, perm fs.FileMode, merged map[string]interface{}) error {
	data, err := os.ReadFile(srcFile)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", srcFile)
	}
	if err := os.MkdirAll(filepath.Dir(destFile), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create '%s'", filepath.Dir(destFile))
	}

	if template.IsTemplatedBytes(data) {
		rendered, err := template.Render(string(data), merged)
		if err != nil {
			return errors.Wrapf(err, errors.ErrRender, "cannot render '%s'", srcFile)
		}
		data = []byte(rendered)
	}
	if err := os.WriteFile(destFile, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write '%s'", destFile)
	}
	fmt.Fprintf(e.out, "Deployed '%s'\n", destFile)
	return nil
}
