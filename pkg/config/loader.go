package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/paths"
)

// defaults are applied before config.toml is read, so keys the file
// leaves out still have sensible values.
var defaults = map[string]interface{}{
	"banner": true,
}

// Load reads and parses config.toml from dir.
func Load(dir string) (*Config, error) {
	logger := logging.GetLogger("config")

	configPath := filepath.Join(dir, paths.ConfigFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.Newf(errors.ErrConfigNotFound,
			"%s not found in %s, run 'dotr init' first", paths.ConfigFile, dir)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configPath)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid configuration in %s", configPath)
	}
	cfg.normalize()

	logger.Debug().
		Str("path", configPath).
		Int("packages", len(cfg.Packages)).
		Int("profiles", len(cfg.Profiles)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// normalize fills in the derived fields the TOML form leaves implicit:
// entry names come from their map keys and a package src defaults to
// its slot under the dotfiles/ store.
func (c *Config) normalize() {
	if c.Variables == nil {
		c.Variables = map[string]interface{}{}
	}
	if c.Packages == nil {
		c.Packages = map[string]Package{}
	}
	if c.Profiles == nil {
		c.Profiles = map[string]Profile{}
	}
	for name, pkg := range c.Packages {
		pkg.Name = name
		if pkg.Src == "" {
			pkg.Src = filepath.Join(paths.DotfilesDir, name)
		}
		c.Packages[name] = pkg
	}
	for name, profile := range c.Profiles {
		profile.Name = name
		c.Profiles[name] = profile
	}
}
