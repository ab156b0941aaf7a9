// Package internal holds the plumbing shared by the command packages:
// loading the repository and activating the requested profile.
package internal

import (
	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/paths"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// Session bundles the loaded repository state every command starts from.
type Session struct {
	// WorkingDir is the resolved repository root.
	WorkingDir string
	// Config is the parsed config.toml.
	Config *config.Config
	// Vars is the variable context with the profile already applied.
	Vars *vars.Context
}

// NewSession loads the repository at workingDir and activates the
// profile selection. An empty workingDir falls back to the current
// directory, an empty profile falls back to the DOTR_PROFILE variable.
func NewSession(workingDir, profile string) (*Session, error) {
	dir, err := paths.WorkingDir(workingDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	ctx, err := vars.New(dir, cfg)
	if err != nil {
		return nil, err
	}

	if err := ctx.ApplyProfile(cfg, profile); err != nil {
		return nil, err
	}

	return &Session{WorkingDir: dir, Config: cfg, Vars: ctx}, nil
}
