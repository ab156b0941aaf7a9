// Package diff implements the diff command: report how deployed files
// differ from what deploy would write, without touching anything.
package diff

import (
	"github.com/arthur-debert/dotr/pkg/commands/internal"
	diffengine "github.com/arthur-debert/dotr/pkg/diff"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/resolver"
)

// DiffOptions defines the options for the Diff command.
type DiffOptions struct {
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
}

// DiffResult holds one report per selected package.
type DiffResult struct {
	// Profile is the profile that was active, or "".
	Profile string
	// Reports are the per-package diff reports in package order.
	Reports []diffengine.Report
}

// HasChanges reports whether any package differs from its destination.
func (r *DiffResult) HasChanges() bool {
	for _, report := range r.Reports {
		if report.HasChanges() {
			return true
		}
	}
	return false
}

// Diff computes the difference between the store and the deployed
// files for the selected packages. Templated sources are rendered
// first so the comparison matches what deploy would write.
func Diff(opts DiffOptions) (*DiffResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Diff").Strs("packages", opts.Packages).Msg("Executing command")

	session, err := internal.NewSession(opts.WorkingDir, opts.Profile)
	if err != nil {
		return nil, err
	}

	pkgs, err := resolver.Resolve(session.Config, opts.Packages, session.Vars.Profile())
	if err != nil {
		return nil, err
	}

	reports := make([]diffengine.Report, 0, len(pkgs))
	for _, pkg := range pkgs {
		report, err := diffengine.Compute(pkg, session.Vars)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	log.Info().Str("command", "Diff").
		Int("packages", len(reports)).
		Str("profile", session.Vars.ProfileName()).
		Msg("Command finished")

	return &DiffResult{Profile: session.Vars.ProfileName(), Reports: reports}, nil
}
