// Package printvars implements the print-vars command: show the merged
// variable view the templates and actions would see.
package printvars

import (
	"github.com/arthur-debert/dotr/pkg/commands/internal"
	"github.com/arthur-debert/dotr/pkg/logging"
)

// PrintVarsOptions defines the options for the PrintVars command.
type PrintVarsOptions struct {
	// WorkingDir is the repository root. Empty means the current
	// directory.
	WorkingDir string
	// Profile activates a profile for this run. Empty falls back to
	// the DOTR_PROFILE variable.
	Profile string
}

// PrintVarsResult carries the merged variable view.
type PrintVarsResult struct {
	// Profile is the profile that was active, or "".
	Profile string
	// Variables is the package-independent merged view: environment,
	// configuration, profile and user override layers combined.
	Variables map[string]interface{}
}

// PrintVars computes the merged variables for the repository.
func PrintVars(opts PrintVarsOptions) (*PrintVarsResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "PrintVars").Msg("Executing command")

	session, err := internal.NewSession(opts.WorkingDir, opts.Profile)
	if err != nil {
		return nil, err
	}

	merged, err := session.Vars.Merged(nil)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "PrintVars").
		Int("variables", len(merged)).
		Str("profile", session.Vars.ProfileName()).
		Msg("Command finished")

	return &PrintVarsResult{Profile: session.Vars.ProfileName(), Variables: merged}, nil
}
