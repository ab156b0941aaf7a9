//go:build !windows

package deploy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// fixture is a throwaway repository with an engine wired over it.
type fixture struct {
	t      *testing.T
	dir    string
	cfg    *config.Config
	ctx    *vars.Context
	out    *bytes.Buffer
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	ctx, err := vars.New(dir, cfg)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &fixture{
		t:      t,
		dir:    dir,
		cfg:    cfg,
		ctx:    ctx,
		out:    out,
		engine: New(cfg, ctx, out),
	}
}

// write creates a file relative to the repository root.
func (f *fixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.dir, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *fixture) read(rel string) string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, rel))
	require.NoError(f.t, err)
	return string(data)
}

func (f *fixture) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(f.dir, rel))
	return err == nil
}

func (f *fixture) pkg(name string, mutate func(*config.Package)) config.Package {
	pkg := config.Package{
		Name: name,
		Src:  filepath.Join("dotfiles", name),
		Dest: filepath.Join(f.dir, "live", name),
	}
	if mutate != nil {
		mutate(&pkg)
	}
	f.cfg.SetPackage(pkg)
	return pkg
}

func TestDeployFilePackage(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "plain content")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "plain content", f.read("live/f_conf"))
}

func TestDeployDirectoryPackage(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/app.conf", "top")
	f.write("dotfiles/d_app/themes/dark.conf", "nested")
	pkg := f.pkg("d_app", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "top", f.read("live/d_app/app.conf"))
	assert.Equal(t, "nested", f.read("live/d_app/themes/dark.conf"))
}

func TestDeployRendersTemplates(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["X"] = "1"
	f.write("dotfiles/f_shell", "export X={{ X }}")
	pkg := f.pkg("f_shell", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "export X=1", f.read("live/f_shell"))
}

func TestDeployCopiesBinaryVerbatim(t *testing.T) {
	f := newFixture(t)
	raw := []byte{0xff, 0xfe, '{', '{', 0x00, '}', '}'}
	path := filepath.Join(f.dir, "dotfiles", "f_bin")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	pkg := f.pkg("f_bin", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	got, err := os.ReadFile(filepath.Join(f.dir, "live", "f_bin"))
	require.NoError(t, err)
	assert.Equal(t, raw, got, "binary content must not pass through the renderer")
}

func TestDeployBacksUpExistingDest(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "new content")
	f.write("live/f_conf", "old content")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "new content", f.read("live/f_conf"))
	assert.Equal(t, "old content", f.read("live/f_conf.dotrbak"))
	assert.Contains(t, f.out.String(), "Backed up")
}

func TestDeployRotatesBackup(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "v1")
	pkg := f.pkg("f_conf", nil)
	require.NoError(t, f.engine.Deploy(pkg))

	f.write("dotfiles/f_conf", "v2")
	require.NoError(t, f.engine.Deploy(pkg))

	assert.Equal(t, "v2", f.read("live/f_conf"))
	assert.Equal(t, "v1", f.read("live/f_conf.dotrbak"),
		"each deploy moves the current live state into the backup slot")
}

func TestDeployUnchangedSourceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "same content")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	first := f.read("live/f_conf")
	require.NoError(t, f.engine.Deploy(pkg))

	assert.Equal(t, first, f.read("live/f_conf"))
	assert.Equal(t, first, f.read("live/f_conf.dotrbak"),
		"the second deploy rotates the identical first result into the backup slot")
}

func TestDeployRemovesStaleBackupDirectory(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/a.conf", "new")
	f.write("live/d_app/a.conf", "current")
	f.write("live/d_app.dotrbak/a.conf", "stale")
	pkg := f.pkg("d_app", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "new", f.read("live/d_app/a.conf"))
	assert.Equal(t, "current", f.read("live/d_app.dotrbak/a.conf"),
		"the stale backup is replaced by the renamed live state")
}

func TestDeployIgnoreFiltering(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/keep.conf", "keep")
	f.write("dotfiles/d_app/debug.log", "drop")
	f.write("dotfiles/d_app/node_modules/lib/x.js", "drop")
	pkg := f.pkg("d_app", func(p *config.Package) {
		p.Ignore = []string{"*.log", "node_modules/**"}
	})

	require.NoError(t, f.engine.Deploy(pkg))
	assert.True(t, f.exists("live/d_app/keep.conf"))
	assert.False(t, f.exists("live/d_app/debug.log"))
	assert.False(t, f.exists("live/d_app/node_modules"))
}

func TestDeployRunsActionsInOrder(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["SHELL"] = "/bin/sh"
	f.write("dotfiles/f_conf", "content")
	pkg := f.pkg("f_conf", func(p *config.Package) {
		p.PreActions = []string{"touch pre_ran"}
		p.PostActions = []string{"cp live/f_conf post_copy"}
	})

	require.NoError(t, f.engine.Deploy(pkg))
	assert.True(t, f.exists("pre_ran"))
	assert.Equal(t, "content", f.read("post_copy"),
		"post actions observe the deployed destination")
}

func TestDeployRendersActionVariables(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["SHELL"] = "/bin/sh"
	f.cfg.Variables["MARKER"] = "rendered_marker"
	f.write("dotfiles/f_conf", "content")
	pkg := f.pkg("f_conf", func(p *config.Package) {
		p.PreActions = []string{"touch {{ MARKER }}"}
	})

	require.NoError(t, f.engine.Deploy(pkg))
	assert.True(t, f.exists("rendered_marker"))
}

func TestDeployPreActionFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["SHELL"] = "/bin/sh"
	f.write("dotfiles/f_conf", "content")
	pkg := f.pkg("f_conf", func(p *config.Package) {
		p.PreActions = []string{"exit 1"}
	})

	err := f.engine.Deploy(pkg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionFailed))
	assert.False(t, f.exists("live/f_conf"), "a failed pre action stops the deploy before any write")
}

func TestDeployProfileTarget(t *testing.T) {
	f := newFixture(t)
	f.cfg.SetProfile(config.Profile{Name: "work"})
	require.NoError(t, f.ctx.ApplyProfile(f.cfg, "work"))

	f.write("dotfiles/f_conf", "content")
	pkg := f.pkg("f_conf", func(p *config.Package) {
		p.Targets = map[string]string{"work": filepath.Join(f.dir, "work_dest")}
	})

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "content", f.read("work_dest"))
	assert.False(t, f.exists("live/f_conf"), "the profile target replaces the default dest")
}

func TestDeployProfileVariablesWin(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["GREETING"] = "hello"
	f.cfg.SetProfile(config.Profile{
		Name:      "work",
		Variables: map[string]interface{}{"GREETING": "good morning"},
	})
	require.NoError(t, f.ctx.ApplyProfile(f.cfg, "work"))

	f.write("dotfiles/f_conf", "{{ GREETING }}")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	assert.Equal(t, "good morning", f.read("live/f_conf"))
}

func TestDeployMissingSource(t *testing.T) {
	f := newFixture(t)
	pkg := f.pkg("f_ghost", nil)

	err := f.engine.Deploy(pkg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestDeployPreservesFileMode(t *testing.T) {
	f := newFixture(t)
	script := filepath.Join(f.dir, "dotfiles", "f_script")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))
	pkg := f.pkg("f_script", nil)

	require.NoError(t, f.engine.Deploy(pkg))
	info, err := os.Stat(filepath.Join(f.dir, "live", "f_script"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestUpdateFilePackage(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "stored")
	f.write("live/f_conf", "edited live")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "edited live", f.read("dotfiles/f_conf"))
	assert.Contains(t, f.out.String(), "Updated")
}

func TestUpdateDirectoryPackage(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/a.conf", "stored")
	f.write("live/d_app/a.conf", "edited")
	f.write("live/d_app/new/b.conf", "brand new")
	pkg := f.pkg("d_app", nil)

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "edited", f.read("dotfiles/d_app/a.conf"))
	assert.Equal(t, "brand new", f.read("dotfiles/d_app/new/b.conf"),
		"files new on the live side are added to the store")
}

func TestUpdateSkipsUnchanged(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "same")
	f.write("live/f_conf", "same")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Update(pkg))
	assert.Contains(t, f.out.String(), "Skipping unchanged")
}

func TestUpdateSkipsTemplatedPackage(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_shell", "export X={{ X }}")
	f.write("live/f_shell", "export X=1 # edited")
	pkg := f.pkg("f_shell", nil)

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "export X={{ X }}", f.read("dotfiles/f_shell"),
		"the stored template is the source of truth")
	assert.Contains(t, f.out.String(), "Skipping templated package 'f_shell'")
}

func TestUpdateExcludesBackups(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/a.conf", "stored")
	f.write("live/d_app/a.conf", "edited")
	f.write("live/d_app/a.conf.dotrbak", "old backup")
	pkg := f.pkg("d_app", nil)

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "edited", f.read("dotfiles/d_app/a.conf"))
	assert.False(t, f.exists("dotfiles/d_app/a.conf.dotrbak"),
		"backup files never enter the store")
}

func TestUpdateIgnoreFiltering(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/keep.conf", "stored")
	f.write("live/d_app/keep.conf", "edited")
	f.write("live/d_app/cache.tmp", "scratch")
	pkg := f.pkg("d_app", func(p *config.Package) {
		p.Ignore = []string{"*.tmp"}
	})

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "edited", f.read("dotfiles/d_app/keep.conf"))
	assert.False(t, f.exists("dotfiles/d_app/cache.tmp"))
}

func TestUpdateMissingDest(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", "stored")
	pkg := f.pkg("f_conf", nil)

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "stored", f.read("dotfiles/f_conf"))
	assert.Contains(t, f.out.String(), "does not exist")
}

func TestUpdateProfileTarget(t *testing.T) {
	f := newFixture(t)
	f.cfg.SetProfile(config.Profile{Name: "work"})
	require.NoError(t, f.ctx.ApplyProfile(f.cfg, "work"))

	f.write("dotfiles/f_conf", "stored")
	f.write("work_dest", "work edit")
	pkg := f.pkg("f_conf", func(p *config.Package) {
		p.Targets = map[string]string{"work": filepath.Join(f.dir, "work_dest")}
	})

	require.NoError(t, f.engine.Update(pkg))
	assert.Equal(t, "work edit", f.read("dotfiles/f_conf"))
}
