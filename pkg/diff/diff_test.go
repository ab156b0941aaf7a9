package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/vars"
)

type fixture struct {
	t   *testing.T
	dir string
	cfg *config.Config
	ctx *vars.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	ctx, err := vars.New(dir, cfg)
	require.NoError(t, err)
	return &fixture{t: t, dir: dir, cfg: cfg, ctx: ctx}
}

func (f *fixture) write(rel string, content []byte) {
	f.t.Helper()
	path := filepath.Join(f.dir, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, content, 0o644))
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
	return pkg
}

func TestComputeNoChanges(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", []byte("same\n"))
	f.write("live/f_conf", []byte("same\n"))

	report, err := Compute(f.pkg("f_conf", nil), f.ctx)
	require.NoError(t, err)
	assert.False(t, report.HasChanges())
}

func TestComputeWithChanges(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", []byte("stored line\n"))
	f.write("live/f_conf", []byte("live line\n"))

	report, err := Compute(f.pkg("f_conf", nil), f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	assert.Contains(t, entry.Unified, "-stored line")
	assert.Contains(t, entry.Unified, "+live line", "live edits read as additions")
	assert.False(t, entry.Binary)
}

func TestComputeMissingDest(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_conf", []byte("not deployed yet\n"))

	report, err := Compute(f.pkg("f_conf", nil), f.ctx)
	require.NoError(t, err)
	assert.False(t, report.HasChanges(), "a missing destination is not a difference")
}

func TestComputeRendersTemplates(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["X"] = "1"
	f.write("dotfiles/f_shell", []byte("export X={{ X }}\n"))
	f.write("live/f_shell", []byte("export X=1\n"))

	report, err := Compute(f.pkg("f_shell", nil), f.ctx)
	require.NoError(t, err)
	assert.False(t, report.HasChanges(),
		"an up-to-date rendered destination matches its template source")
}

func TestComputeTemplateVariableChanged(t *testing.T) {
	f := newFixture(t)
	f.cfg.Variables["X"] = "2"
	f.write("dotfiles/f_shell", []byte("export X={{ X }}\n"))
	f.write("live/f_shell", []byte("export X=1\n"))

	report, err := Compute(f.pkg("f_shell", nil), f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Contains(t, report.Entries[0].Unified, "-export X=2")
	assert.Contains(t, report.Entries[0].Unified, "+export X=1")
}

func TestComputeDirectoryPackage(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/a.conf", []byte("a stored\n"))
	f.write("dotfiles/d_app/sub/b.conf", []byte("b stored\n"))
	f.write("live/d_app/a.conf", []byte("a live\n"))
	f.write("live/d_app/sub/b.conf", []byte("b stored\n"))

	report, err := Compute(f.pkg("d_app", nil), f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1, "only the changed file is reported")
	assert.Contains(t, report.Entries[0].Source, "a.conf")
}

func TestComputeRespectsIgnore(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/d_app/keep.conf", []byte("same\n"))
	f.write("dotfiles/d_app/noise.log", []byte("stored\n"))
	f.write("live/d_app/keep.conf", []byte("same\n"))
	f.write("live/d_app/noise.log", []byte("live\n"))

	pkg := f.pkg("d_app", func(p *config.Package) {
		p.Ignore = []string{"*.log"}
	})

	report, err := Compute(pkg, f.ctx)
	require.NoError(t, err)
	assert.False(t, report.HasChanges())
}

func TestComputeBinaryChange(t *testing.T) {
	f := newFixture(t)
	f.write("dotfiles/f_bin", []byte{0xff, 0x01, 0x02})
	f.write("live/f_bin", []byte{0xff, 0x01, 0x03})

	report, err := Compute(f.pkg("f_bin", nil), f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.True(t, report.Entries[0].Binary)
	assert.Empty(t, report.Entries[0].Unified)
}

func TestComputeProfileTarget(t *testing.T) {
	f := newFixture(t)
	f.cfg.SetProfile(config.Profile{Name: "work"})
	require.NoError(t, f.ctx.ApplyProfile(f.cfg, "work"))

	f.write("dotfiles/f_conf", []byte("stored\n"))
	f.write("work_dest", []byte("work live\n"))

	pkg := f.pkg("f_conf", func(p *config.Package) {
		p.Targets = map[string]string{"work": filepath.Join(f.dir, "work_dest")}
	})

	report, err := Compute(pkg, f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, filepath.Join(f.dir, "work_dest"), report.Entries[0].Dest)
}
