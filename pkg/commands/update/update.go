// Package update implements the update command: copy live files from
// their destinations back into the dotfiles store.
package update

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotr/pkg/commands/internal"
	engine "github.com/arthur-debert/dotr/pkg/deploy"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/resolver"
)

// UpdateOptions defines the options for the Update command.
type UpdateOptions struct {
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
	// Out receives progress messages. Nil discards them.
	Out io.Writer
}

// UpdateResult lists what was updated.
type UpdateResult struct {
	// Profile is the profile that was active, or "".
	Profile string
	// Packages are the processed package names in order. Templated
	// packages appear here even though their store copy was left
	// untouched.
	Packages []string
}

// Update copies the deployed files of the selected packages back into
// the dotfiles store. Templated packages are skipped, a rendered file
// must not overwrite its template. No actions run during update.
func Update(opts UpdateOptions) (*UpdateResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Update").Strs("packages", opts.Packages).Msg("Executing command")

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

	eng := engine.New(session.Config, session.Vars, out)
	updated := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		fmt.Fprintf(out, "Updating package '%s'\n", pkg.Name)
		if err := eng.Update(pkg); err != nil {
			return nil, err
		}
		updated = append(updated, pkg.Name)
	}

	log.Info().Str("command", "Update").
		Int("packages", len(updated)).
		Str("profile", session.Vars.ProfileName()).
		Msg("Command finished")

	return &UpdateResult{Profile: session.Vars.ProfileName(), Packages: updated}, nil
}
