// Package deploy implements the deploy command: render and copy the
// selected packages from the dotfiles store to their destinations.
package deploy

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotr/pkg/commands/internal"
	engine "github.com/arthur-debert/dotr/pkg/deploy"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/prompt"
	"github.com/arthur-debert/dotr/pkg/resolver"
)

// DeployOptions defines the options for the Deploy command.
type DeployOptions struct {
	// WorkingDir is the repository root. Empty means the current
	// directory.
	WorkingDir string
	// Packages selects specific packages by name. Empty means the
	// default selection: the active profile's dependencies, or every
	// package not marked skip.
	Packages []string
	// Profile activates a profile for this run. Empty falls back to
	// the DOTR_PROFILE variable.
	Profile string
	// Asker collects missing prompt variables before deploying. Nil
	// skips prompting.
	Asker prompt.Asker
	// Out receives progress messages. Nil discards them.
	Out io.Writer
}

// DeployResult lists what was deployed.
type DeployResult struct {
	// Profile is the profile that was active, or "".
	Profile string
	// Packages are the deployed package names in deployment order.
	Packages []string
}

// Deploy runs the full deployment cycle for the selected packages:
// pre actions, backup of the current destination, render and copy,
// post actions. The first failing package aborts the run.
func Deploy(opts DeployOptions) (*DeployResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Deploy").Strs("packages", opts.Packages).Msg("Executing command")

	session, err := internal.NewSession(opts.WorkingDir, opts.Profile)
	if err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	pkgs, err := resolver.Resolve(session.Config, opts.Packages, session.Vars.Profile())
	if err != nil {
		return nil, err
	}

	if opts.Asker != nil {
		if err := prompt.Gather(opts.Asker, session.Vars, session.Config, pkgs); err != nil {
			return nil, err
		}
	}

	eng := engine.New(session.Config, session.Vars, out)
	deployed := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		fmt.Fprintf(out, "Deploying package '%s'\n", pkg.Name)
		if err := eng.Deploy(pkg); err != nil {
			return nil, err
		}
		deployed = append(deployed, pkg.Name)
	}

	log.Info().Str("command", "Deploy").
		Int("packages", len(deployed)).
		Str("profile", session.Vars.ProfileName()).
		Msg("Command finished")

	return &DeployResult{Profile: session.Vars.ProfileName(), Packages: deployed}, nil
}
