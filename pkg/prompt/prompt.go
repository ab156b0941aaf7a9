// Package prompt asks the user for variables a run needs but no
// layer provides, and persists the answers as machine-local
// overrides.
package prompt

import (
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// Asker asks one question and returns the user's answer. Commands use
// the interactive survey implementation; tests substitute their own.
type Asker interface {
	Ask(name, message string) (string, error)
}

// SurveyAsker prompts on the terminal.
type SurveyAsker struct{}

// Ask shows one input prompt. An empty message falls back to the
// variable name so a bare prompt entry still renders something.
func (SurveyAsker) Ask(name, message string) (string, error) {
	if message == "" {
		message = name
	}
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message}, &answer); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "prompt for '%s' aborted", name)
	}
	return answer, nil
}

// Gather asks every prompt that applies to this run: the
// configuration-level prompts, the active profile's and those of each
// selected package. A variable that already resolves through any
// layer is never asked again. Answers go into the context's override
// layer and are saved to .uservariables.toml so the next run stays
// quiet.
func Gather(asker Asker, ctx *vars.Context, cfg *config.Config, pkgs []config.Package) error {
	pending := map[string]string{}

	merged, err := ctx.Merged(nil)
	if err != nil {
		return err
	}
	addMissing(pending, cfg.Prompts, merged)
	if profile := ctx.Profile(); profile != nil {
		addMissing(pending, profile.Prompts, merged)
	}
	for i := range pkgs {
		pkgMerged, err := ctx.Merged(&pkgs[i])
		if err != nil {
			return err
		}
		addMissing(pending, pkgs[i].Prompts, pkgMerged)
	}

	if len(pending) == 0 {
		return nil
	}

	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)

	logger := logging.GetLogger("prompt")
	logger.Debug().
		Strs("variables", names).
		Msg("Asking for missing variables")

	for _, name := range names {
		answer, err := asker.Ask(name, pending[name])
		if err != nil {
			return err
		}
		ctx.SetUserVar(name, answer)
	}

	return config.SaveUserVars(ctx.WorkingDir, ctx.UserVars())
}

func addMissing(pending map[string]string, prompts map[string]string, merged map[string]interface{}) {
	for name, message := range prompts {
		if _, ok := merged[name]; ok {
			continue
		}
		pending[name] = message
	}
}
