// Package vars builds the layered variable context used for template
// rendering, action execution and profile selection.
//
// Layers from lowest to highest precedence: process environment,
// configuration variables, package variables, profile variables and
// machine-local user overrides. A higher layer replaces a colliding
// key wholesale, nested tables are swapped out, not deep-merged.
package vars

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/logging"
)

// ProfileVar selects the active profile when no flag is given.
const ProfileVar = "DOTR_PROFILE"

// ShellVar names the shell actions are executed with.
const ShellVar = "SHELL"

// Context carries the variable layers for one CLI invocation. The
// merged view is recomputed per package because the package layer
// differs per package.
type Context struct {
	WorkingDir string

	configVars map[string]interface{}
	userVars   map[string]interface{}
	profile    *config.Profile
}

// New builds the variable context for a repository rooted at
// workingDir. User overrides are read from .uservariables.toml, a
// malformed file is a fatal parse error rather than a silent skip.
func New(workingDir string, cfg *config.Config) (*Context, error) {
	userVars, err := config.LoadUserVars(workingDir)
	if err != nil {
		return nil, err
	}
	return &Context{
		WorkingDir: workingDir,
		configVars: cfg.Variables,
		userVars:   userVars,
	}, nil
}

// Profile returns the active profile, or nil when none is selected.
func (c *Context) Profile() *config.Profile {
	return c.profile
}

// ProfileName returns the active profile's name, or "".
func (c *Context) ProfileName() string {
	if c.profile == nil {
		return ""
	}
	return c.profile.Name
}

// ApplyProfile resolves and activates the profile for this
// invocation: an explicit name wins, otherwise the DOTR_PROFILE
// variable from the merged context, otherwise none. Naming a profile
// that does not exist is an error either way.
func (c *Context) ApplyProfile(cfg *config.Config, explicit string) error {
	name := explicit
	if name == "" {
		if v, ok := c.Lookup(ProfileVar); ok {
			name, _ = v.(string)
		}
	}
	if name == "" {
		return nil
	}

	profile, ok := cfg.GetProfile(name)
	if !ok {
		return errors.Newf(errors.ErrProfileNotFound, "profile '%s' not found", name)
	}
	c.profile = &profile

	logger := logging.GetLogger("vars")
	logger.Debug().Str("profile", name).Msg("Profile activated")
	return nil
}

// Merged computes the effective variable map for one package. Pass a
// nil package for the package-independent view used by profile
// selection and print-vars.
func (c *Context) Merged(pkg *config.Package) (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot read process environment")
	}

	layers := []map[string]interface{}{c.configVars}
	if pkg != nil {
		layers = append(layers, pkg.Variables)
	}
	if c.profile != nil {
		layers = append(layers, c.profile.Variables)
	}
	layers = append(layers, c.userVars)

	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		if err := k.Load(confmap.Provider(layer, ""), nil, koanf.WithMergeFunc(replaceKeys)); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot merge variable layer")
		}
	}
	return k.Raw(), nil
}

// UserVars returns the machine-local override layer.
func (c *Context) UserVars() map[string]interface{} {
	return c.userVars
}

// SetUserVar records a value in the override layer so subsequent
// merges see it. Prompt answers land here before being persisted.
func (c *Context) SetUserVar(key string, value interface{}) {
	if c.userVars == nil {
		c.userVars = map[string]interface{}{}
	}
	c.userVars[key] = value
}

// Lookup reads one key from the package-independent merged view.
func (c *Context) Lookup(key string) (interface{}, bool) {
	merged, err := c.Merged(nil)
	if err != nil {
		return nil, false
	}
	v, ok := merged[key]
	return v, ok
}

// Shell returns the shell actions run under, from the merged SHELL
// variable with a /bin/sh fallback.
func Shell(merged map[string]interface{}) string {
	if s, ok := merged[ShellVar].(string); ok && s != "" {
		return s
	}
	return "/bin/sh"
}

// replaceKeys is the merge strategy for variable layers: a top-level
// key from a higher layer replaces the lower value entirely.
func replaceKeys(src, dest map[string]interface{}) error {
	for key, value := range src {
		dest[key] = value
	}
	return nil
}
