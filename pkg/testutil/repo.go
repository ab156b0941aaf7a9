package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotr/pkg/config"
)

// Repo is a throwaway dotr repository rooted in a temporary directory.
// It mirrors what `dotr init` produces so command tests can start from
// a realistic layout.
type Repo struct {
	t *testing.T

	// Dir is the repository root.
	Dir string
}

// NewRepo creates an initialized repository: config.toml, dotfiles/
// and .gitignore. The directory is removed when the test completes.
func NewRepo(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()
	if _, _, err := config.Init(dir); err != nil {
		t.Fatalf("Failed to initialize repository in %s: %v", dir, err)
	}

	return &Repo{t: t, Dir: dir}
}

// Path joins a relative path onto the repository root.
func (r *Repo) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// WriteFile writes a file relative to the repository root, creating
// parent directories as needed.
func (r *Repo) WriteFile(name, content string) string {
	r.t.Helper()
	return CreateFile(r.t, r.Dir, name, content)
}

// ReadFile reads a file relative to the repository root.
func (r *Repo) ReadFile(name string) string {
	r.t.Helper()
	return ReadFile(r.t, r.Path(name))
}

// Exists reports whether a path relative to the repository root exists.
func (r *Repo) Exists(name string) bool {
	r.t.Helper()
	return FileExists(r.t, r.Path(name)) || DirExists(r.t, r.Path(name))
}

// Config loads the current config.toml.
func (r *Repo) Config() *config.Config {
	r.t.Helper()

	cfg, err := config.Load(r.Dir)
	if err != nil {
		r.t.Fatalf("Failed to load config from %s: %v", r.Dir, err)
	}
	return cfg
}

// SaveConfig writes cfg back to the repository.
func (r *Repo) SaveConfig(cfg *config.Config) {
	r.t.Helper()

	if err := cfg.Save(r.Dir); err != nil {
		r.t.Fatalf("Failed to save config to %s: %v", r.Dir, err)
	}
}
