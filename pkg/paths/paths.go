// Package paths provides centralized path handling for dotr.
// It resolves user-supplied paths against the working directory,
// expands and normalizes home-relative paths, and defines the
// repository layout constants used by every command.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/arthur-debert/dotr/pkg/errors"
)

// Repository layout
// IMPORTANT: These constants define the on-disk structure of a dotr
// repository and are NOT user-configurable. They must remain consistent
// across installations so repositories stay portable between machines.
const (
	// ConfigFile is the name of the repository configuration file
	ConfigFile = "config.toml"

	// DotfilesDir is the directory that stores package sources
	DotfilesDir = "dotfiles"

	// UserVarsFile holds machine-local variable overrides
	UserVarsFile = ".uservariables.toml"

	// GitignoreFile is the repository ignore file written by init
	GitignoreFile = ".gitignore"

	// BackupExt is the extension appended to paths displaced by deploy
	BackupExt = "dotrbak"

	// LogFileName is the name of the log file
	LogFileName = "dotr.log"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "", errors.Wrap(err, errors.ErrIO, "unable to determine home directory")
	}
	return home, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths without a ~ prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot expand %s", path)
	}
	return expanded, nil
}

// Resolve turns a user-supplied path into an absolute one. Absolute
// paths pass through untouched, ~ paths expand to the home directory,
// and relative paths are joined onto workingDir.
func Resolve(path, workingDir string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		return ExpandHome(path)
	}
	abs, err := filepath.Abs(filepath.Join(workingDir, path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot resolve %s", path)
	}
	return abs, nil
}

// NormalizeHome rewrites an absolute path under the home directory
// into ~ form so destinations stay portable between machines. Paths
// already in ~ form and absolute paths outside home are unchanged.
func NormalizeHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(path)
	if cleaned == home {
		return "~", nil
	}
	if strings.HasPrefix(cleaned, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(cleaned, home), nil
	}
	return path, nil
}

// BackupPath returns the backup location for a deployed path.
func BackupPath(path string) string {
	return path + "." + BackupExt
}

// IsBackupPath reports whether path carries the backup extension.
func IsBackupPath(path string) bool {
	return strings.HasSuffix(path, "."+BackupExt)
}

// WorkingDir resolves the effective working directory for a command.
// An empty override means the process working directory. An override
// that does not exist is fatal.
func WorkingDir(override string) (string, error) {
	if override == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrIO, "cannot determine working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot resolve working directory %s", override)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return "", errors.Newf(errors.ErrInvalidInput, "working directory '%s' does not exist", abs)
	}
	return abs, nil
}
