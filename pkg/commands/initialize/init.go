// Package initialize creates a fresh dotr repository in the working
// directory.
package initialize

import (
	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/paths"
)

// InitOptions defines the options for the Init command.
type InitOptions struct {
	// WorkingDir is the directory the repository is created in. Empty
	// means the current directory.
	WorkingDir string
}

// InitResult describes what Init did.
type InitResult struct {
	// WorkingDir is the resolved repository root.
	WorkingDir string
	// Created reports whether a new repository was written. False means
	// a config.toml already existed and nothing was touched.
	Created bool
	// Config is the repository configuration, freshly written or loaded
	// from the existing file.
	Config *config.Config
}

// Init creates config.toml, the dotfiles directory and a .gitignore in
// the working directory. Running it on an existing repository is a
// no-op so it is always safe to call.
func Init(opts InitOptions) (*InitResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Init").Msg("Executing command")

	dir, err := paths.WorkingDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	cfg, created, err := config.Init(dir)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "Init").
		Str("dir", dir).
		Bool("created", created).
		Msg("Command finished")

	return &InitResult{WorkingDir: dir, Created: created, Config: cfg}, nil
}
