// Package template detects and renders templated dotfiles.
//
// Detection is a cheap marker scan so plain files stay untouched.
// Rendering runs the full template engine against the merged variable
// context, with autoescaping disabled: dotfiles are shell and editor
// configs, and every value must come out byte-for-byte.
package template

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/arthur-debert/dotr/pkg/errors"
)

// markerPattern matches the six marker pairs in trimmed and untrimmed
// form: expressions {{ }}, statements {% %} and comments {# #}.
var markerPattern = regexp.MustCompile(`(\{\{-?|-?\}\}|\{%-?|-?%\}|\{#-?|-?#\})`)

func init() {
	pongo2.SetAutoescape(false)
}

// IsTemplated reports whether text contains template markers.
func IsTemplated(text string) bool {
	return markerPattern.MatchString(text)
}

// IsTemplatedBytes is IsTemplated for raw file content. Binary data is
// never templated, it is copied verbatim.
func IsTemplatedBytes(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	return IsTemplated(string(data))
}

// Render executes text as a template against the merged variables.
func Render(text string, variables map[string]interface{}) (string, error) {
	tpl, err := pongo2.FromString(text)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "cannot parse template")
	}
	out, err := tpl.Execute(pongo2.Context(variables))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "cannot render template")
	}
	return out, nil
}

// PackageIsTemplated reports whether the stored source at src holds a
// template. A file decides for itself; for a directory the first
// readable text file found during the walk decides. The result gates
// backup on import and update so a stored template is never clobbered
// with rendered live content.
func PackageIsTemplated(src string) (bool, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", src)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(src)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrIO, "cannot read %s", src)
		}
		return IsTemplatedBytes(data), nil
	}

	templated := false
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			// Unreadable or binary, keep looking for a text file.
			return nil
		}
		templated = IsTemplated(string(data))
		return filepath.SkipAll
	})
	if walkErr != nil {
		return false, errors.Wrapf(walkErr, errors.ErrIO, "cannot scan %s", src)
	}
	return templated, nil
}
