// Package config loads and persists the dotr repository configuration.
//
// A repository is a directory holding config.toml, a dotfiles/ store
// for package sources, and an optional .uservariables.toml file with
// machine-local variable overrides that never enter version control.
package config

import (
	"os"
	"path/filepath"
	"sort"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/paths"
)

// Package is one deployable unit: a file or directory stored under
// dotfiles/ together with the destination it deploys to.
//
// Name is the [packages.<name>] key and is filled at load time, it is
// never serialized into the package table itself.
type Package struct {
	Name         string                 `koanf:"-" toml:"-"`
	Src          string                 `koanf:"src" toml:"src"`
	Dest         string                 `koanf:"dest" toml:"dest"`
	Dependencies []string               `koanf:"dependencies" toml:"dependencies,omitempty"`
	Variables    map[string]interface{} `koanf:"variables" toml:"variables,omitempty"`
	PreActions   []string               `koanf:"pre_actions" toml:"pre_actions,omitempty"`
	PostActions  []string               `koanf:"post_actions" toml:"post_actions,omitempty"`
	Targets      map[string]string      `koanf:"targets" toml:"targets,omitempty"`
	Skip         bool                   `koanf:"skip" toml:"skip,omitempty"`
	Prompts      map[string]string      `koanf:"prompts" toml:"prompts,omitempty"`
	Ignore       []string               `koanf:"ignore" toml:"ignore,omitempty"`
}

// EffectiveDest returns the destination for this package while profile
// is active. A matching targets entry overrides the package dest.
func (p Package) EffectiveDest(profile string) string {
	if profile != "" {
		if dest, ok := p.Targets[profile]; ok {
			return dest
		}
	}
	return p.Dest
}

// Profile names a set of packages deployed together plus the variables
// and prompts that apply while it is active.
type Profile struct {
	Name         string                 `koanf:"-" toml:"-"`
	Dependencies []string               `koanf:"dependencies" toml:"dependencies,omitempty"`
	Variables    map[string]interface{} `koanf:"variables" toml:"variables,omitempty"`
	Prompts      map[string]string      `koanf:"prompts" toml:"prompts,omitempty"`
}

// Config is the parsed contents of config.toml. User overrides from
// .uservariables.toml are kept out of this struct so that Save can
// never leak them into the repository file.
type Config struct {
	Banner    bool                   `koanf:"banner" toml:"banner"`
	Variables map[string]interface{} `koanf:"variables" toml:"variables,omitempty"`
	Prompts   map[string]string      `koanf:"prompts" toml:"prompts,omitempty"`
	Packages  map[string]Package     `koanf:"packages" toml:"packages,omitempty"`
	Profiles  map[string]Profile     `koanf:"profiles" toml:"profiles,omitempty"`
}

// New returns the configuration init writes into a fresh repository.
func New() *Config {
	return &Config{
		Banner:    true,
		Variables: map[string]interface{}{},
		Packages:  map[string]Package{},
		Profiles:  map[string]Profile{},
	}
}

// GetPackage looks up a package by name.
func (c *Config) GetPackage(name string) (Package, bool) {
	pkg, ok := c.Packages[name]
	return pkg, ok
}

// GetProfile looks up a profile by name.
func (c *Config) GetProfile(name string) (Profile, bool) {
	profile, ok := c.Profiles[name]
	return profile, ok
}

// PackageNames returns all package names in sorted order.
func (c *Config) PackageNames() []string {
	names := make([]string, 0, len(c.Packages))
	for name := range c.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetPackage inserts or replaces a package entry.
func (c *Config) SetPackage(pkg Package) {
	if c.Packages == nil {
		c.Packages = map[string]Package{}
	}
	c.Packages[pkg.Name] = pkg
}

// SetProfile inserts or replaces a profile entry.
func (c *Config) SetProfile(profile Profile) {
	if c.Profiles == nil {
		c.Profiles = map[string]Profile{}
	}
	c.Profiles[profile.Name] = profile
}

// Save writes the configuration back to config.toml in dir.
func (c *Config) Save(dir string) error {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot serialize configuration")
	}
	configPath := filepath.Join(dir, paths.ConfigFile)
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write %s", configPath)
	}
	return nil
}

// Init creates a fresh repository in dir: a default config.toml, the
// dotfiles/ store and a .gitignore that keeps machine-local variables
// out of version control. When config.toml already exists nothing is
// written and the existing configuration is returned, so running init
// twice is safe. The second return value reports whether a new
// repository was created.
func Init(dir string) (*Config, bool, error) {
	configPath := filepath.Join(dir, paths.ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		cfg, err := Load(dir)
		return cfg, false, err
	}

	cfg := New()
	if err := cfg.Save(dir); err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(filepath.Join(dir, paths.DotfilesDir), 0o755); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrIO, "cannot create dotfiles directory")
	}
	gitignorePath := filepath.Join(dir, paths.GitignoreFile)
	if err := os.WriteFile(gitignorePath, []byte(paths.UserVarsFile+"\n"), 0o644); err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrIO, "cannot write %s", gitignorePath)
	}
	return cfg, true, nil
}

// LoadUserVars reads .uservariables.toml from dir. A missing file is
// not an error, overrides are strictly optional per machine.
func LoadUserVars(dir string) (map[string]interface{}, error) {
	path := filepath.Join(dir, paths.UserVarsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read %s", path)
	}
	vars := map[string]interface{}{}
	if err := gotoml.Unmarshal(data, &vars); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path)
	}
	return vars, nil
}

// SaveUserVars writes machine-local overrides to .uservariables.toml.
func SaveUserVars(dir string, vars map[string]interface{}) error {
	data, err := gotoml.Marshal(vars)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot serialize user variables")
	}
	path := filepath.Join(dir, paths.UserVarsFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write %s", path)
	}
	return nil
}
