// Package guide ships the built-in documentation topics and renders
// them for the terminal. Topics are markdown files embedded in the
// binary so help is available offline and in sync with the release.
package guide

import (
	"embed"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/dotr/pkg/errors"
)

//go:embed topics/*.md
var topicsFS embed.FS

// Topics returns the available topic names in sorted order.
func Topics() []string {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Content returns the raw markdown for one topic.
func Content(name string) (string, error) {
	data, err := topicsFS.ReadFile("topics/" + name + ".md")
	if err != nil {
		return "", errors.Newf(errors.ErrInvalidInput,
			"no guide topic '%s', run 'dotr guide' for the list", name)
	}
	return string(data), nil
}

// Render returns a topic formatted for the terminal. With colored set
// the markdown is styled via glamour, otherwise a plain style is used.
// Rendering problems fall back to the raw markdown.
func Render(name string, colored bool) (string, error) {
	content, err := Content(name)
	if err != nil {
		return "", err
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if colored {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content, nil
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content, nil
	}
	return rendered, nil
}
