// Package importer brings an existing live file or directory under
// dotr management: the path is copied into the dotfiles store and a
// package entry pointing back at its origin is added to config.toml.
package importer

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/logging"
	"github.com/arthur-debert/dotr/pkg/paths"
)

// ImportOptions defines the options for the Import command.
type ImportOptions struct {
	// WorkingDir is the repository root. Empty means the current
	// directory.
	WorkingDir string
	// Path is the live file or directory to import.
	Path string
	// Name overrides the derived package name.
	Name string
	// Profile assigns the package to a profile: the package is marked
	// skip and added to the profile's dependencies so it only deploys
	// when that profile is active.
	Profile string
}

// ImportResult describes the package Import created.
type ImportResult struct {
	// PackageName is the name the package was registered under.
	PackageName string
	// Src is the store path relative to the repository root.
	Src string
	// Dest is the recorded deploy destination, in ~ form when the
	// imported path lives under the home directory.
	Dest string
}

// Import copies a live path into the dotfiles store and records it as
// a package. The original file is left in place, deploy will later
// back it up and overwrite it from the store.
func Import(opts ImportOptions) (*ImportResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Import").Str("path", opts.Path).Msg("Executing command")

	if opts.Path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no path to import given")
	}

	dir, err := paths.WorkingDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	srcPath, err := paths.Resolve(opts.Path, dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(srcPath)
	if os.IsNotExist(err) {
		return nil, errors.Newf(errors.ErrInvalidInput, "path '%s' does not exist", opts.Path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", srcPath)
	}

	name := opts.Name
	if name == "" {
		name = config.PackageName(srcPath, info.IsDir())
	}
	if _, exists := cfg.GetPackage(name); exists {
		return nil, errors.Newf(errors.ErrInvalidInput, "package '%s' already exists", name)
	}

	storePath := filepath.Join(dir, paths.DotfilesDir, name)
	if info.IsDir() {
		err = copyTree(srcPath, storePath)
	} else {
		err = copyFile(srcPath, storePath, info.Mode().Perm())
	}
	if err != nil {
		return nil, err
	}

	dest, err := paths.NormalizeHome(srcPath)
	if err != nil {
		return nil, err
	}

	pkg := config.Package{
		Name: name,
		Src:  filepath.Join(paths.DotfilesDir, name),
		Dest: dest,
	}

	if opts.Profile != "" {
		pkg.Skip = true
		profile, ok := cfg.GetProfile(opts.Profile)
		if !ok {
			profile = config.Profile{Name: opts.Profile}
		}
		if !containsString(profile.Dependencies, name) {
			profile.Dependencies = append(profile.Dependencies, name)
		}
		cfg.SetProfile(profile)
	}

	cfg.SetPackage(pkg)
	if err := cfg.Save(dir); err != nil {
		return nil, err
	}

	log.Info().Str("command", "Import").
		Str("package", name).
		Str("dest", dest).
		Msg("Command finished")

	return &ImportResult{PackageName: name, Src: pkg.Src, Dest: dest}, nil
}

// copyFile copies one file, creating parent directories as needed.
func copyFile(src, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot read %s", src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create %s", filepath.Dir(dst))
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write %s", dst)
	}
	return nil
}

// copyTree copies a directory tree file by file.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot walk %s", path)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot relativize %s", path)
		}
		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot stat %s", path)
		}
		return copyFile(path, filepath.Join(dst, rel), info.Mode().Perm())
	})
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
