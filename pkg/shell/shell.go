// Package shell executes package pre and post actions.
package shell

import (
	"context"
	"os"
	"os/exec"

	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/template"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// RunAction renders one action against the merged variables and
// executes it with the merged SHELL's -c flag, from workingDir. The
// action inherits the process environment and standard streams so it
// can prompt or print like any shell command. A non-zero exit aborts
// the package operation.
func RunAction(ctx context.Context, action string, variables map[string]interface{}, workingDir string) error {
	rendered, err := template.Render(action, variables)
	if err != nil {
		return err
	}
	shellPath := vars.Shell(variables)

	logger := logging.GetLogger("shell")
	logger.Debug().
		Str("shell", shellPath).
		Str("action", rendered).
		Str("dir", workingDir).
		Msg("Running action")

	cmd := exec.CommandContext(ctx, shellPath, "-c", rendered)
	cmd.Dir = workingDir
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return errors.Newf(errors.ErrActionFailed,
				"action '%s' failed to execute with exit code: %d", action, exitErr.ExitCode()).
				WithDetail("exit_code", exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrActionFailed, "action '%s' could not be started", action)
	}
	return nil
}
