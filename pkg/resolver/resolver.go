// Package resolver computes the working set of packages for one
// operation: the base selection plus the packages it depends on.
package resolver

import (
	"sort"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/errors"
	"github.com/arthur-debert/dotr/pkg/logging"
)

// Resolve computes the packages an operation works on.
//
// The base set comes from, in order: explicit names (each must exist,
// and an active profile never filters an explicit selection), the
// active profile's dependencies, or every package not marked skip.
// Dependencies of the base set are then added one level deep, a
// dependency's own dependencies are not expanded. The result is
// deduplicated and sorted by name. Any unknown name aborts the whole
// resolution, nothing is partially returned.
func Resolve(cfg *config.Config, names []string, profile *config.Profile) ([]config.Package, error) {
	selected := map[string]config.Package{}

	switch {
	case len(names) > 0:
		for _, name := range names {
			pkg, ok := cfg.GetPackage(name)
			if !ok {
				return nil, errors.Newf(errors.ErrPackageNotFound, "package '%s' not found", name)
			}
			selected[name] = pkg
		}
	case profile != nil:
		for _, name := range profile.Dependencies {
			pkg, ok := cfg.GetPackage(name)
			if !ok {
				return nil, errors.Newf(errors.ErrPackageNotFound,
					"package '%s' of profile '%s' not found", name, profile.Name)
			}
			selected[name] = pkg
		}
	default:
		for name, pkg := range cfg.Packages {
			if !pkg.Skip {
				selected[name] = pkg
			}
		}
	}

	base := make([]config.Package, 0, len(selected))
	for _, pkg := range selected {
		base = append(base, pkg)
	}
	for _, pkg := range base {
		for _, dep := range pkg.Dependencies {
			if _, ok := selected[dep]; ok {
				continue
			}
			depPkg, ok := cfg.GetPackage(dep)
			if !ok {
				return nil, errors.Newf(errors.ErrDependencyNotFound,
					"dependency '%s' of package '%s' not found", dep, pkg.Name)
			}
			selected[dep] = depPkg
		}
	}

	result := make([]config.Package, 0, len(selected))
	for _, pkg := range selected {
		result = append(result, pkg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	logger := logging.GetLogger("resolver")
	logger.Debug().
		Int("selected", len(result)).
		Strs("names", names).
		Msg("Working set resolved")

	return result, nil
}
