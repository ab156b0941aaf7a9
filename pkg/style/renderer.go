package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/dotr/pkg/diff"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderVariables(variables map[string]interface{}) string
	RenderDiff(report *diff.Report) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderVariables renders the merged variable view as an indented tree.
// Nested tables recurse one level deeper, arrays list their items as
// dashed entries.
func (r *TerminalRenderer) RenderVariables(variables map[string]interface{}) string {
	var result strings.Builder
	result.WriteString(TitleStyle.Render("User Variables:") + "\n")

	if len(variables) == 0 {
		result.WriteString(MutedStyle.Render("  (none)") + "\n")
		return strings.TrimRight(result.String(), "\n")
	}

	for _, key := range sortedKeys(variables) {
		writeVariable(&result, key, variables[key], 1, true)
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderDiff renders a diff report with colorized unified output
func (r *TerminalRenderer) RenderDiff(report *diff.Report) string {
	if report == nil {
		return ""
	}

	if !report.HasChanges() {
		return fmt.Sprintf("%s %s", SuccessIndicator,
			NormalStyle.Render(fmt.Sprintf("Package '%s' is up to date", report.Package)))
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render(fmt.Sprintf("Package '%s'", report.Package)) + "\n")

	for _, entry := range report.Entries {
		if entry.Binary {
			result.WriteString(fmt.Sprintf("%s %s differs (binary)\n",
				WarningIndicator, PathStyle.Render(entry.Dest)))
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(entry.Unified, "\n"), "\n") {
			result.WriteString(colorizeDiffLine(line) + "\n")
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message with the pterm error accent
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, ErrorStyle.Render(err.Error()))
}

// colorizeDiffLine picks a style for one line of unified diff output
func colorizeDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return Bold(line)
	case strings.HasPrefix(line, "@@"):
		return DiffHunkStyle.Render(line)
	case strings.HasPrefix(line, "+"):
		return DiffAddStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return DiffDelStyle.Render(line)
	default:
		return line
	}
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderVariables renders the variable tree without styling
func (r *PlainRenderer) RenderVariables(variables map[string]interface{}) string {
	var result strings.Builder
	result.WriteString("User Variables:\n")

	if len(variables) == 0 {
		result.WriteString("  (none)\n")
		return strings.TrimRight(result.String(), "\n")
	}

	for _, key := range sortedKeys(variables) {
		writeVariable(&result, key, variables[key], 1, false)
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderDiff renders a diff report as plain unified text
func (r *PlainRenderer) RenderDiff(report *diff.Report) string {
	if report == nil {
		return ""
	}

	if !report.HasChanges() {
		return fmt.Sprintf("Package '%s' is up to date", report.Package)
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Package '%s'\n", report.Package))

	for _, entry := range report.Entries {
		if entry.Binary {
			result.WriteString(fmt.Sprintf("! %s differs (binary)\n", entry.Dest))
			continue
		}
		result.WriteString(strings.TrimRight(entry.Unified, "\n") + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// writeVariable appends one variable to the tree. Scalars print as
// "key = value", tables print their key and recurse, arrays print
// one dashed line per item.
func writeVariable(result *strings.Builder, key string, value interface{}, level int, styled bool) {
	indent := strings.Repeat("  ", level)
	name := key
	if styled && key != "" {
		name = VariableStyle.Render(key)
	}

	switch v := value.(type) {
	case map[string]interface{}:
		fmt.Fprintf(result, "%s%s =\n", indent, name)
		for _, k := range sortedKeys(v) {
			writeVariable(result, k, v[k], level+1, styled)
		}
	case []interface{}:
		fmt.Fprintf(result, "%s%s = [\n", indent, name)
		itemIndent := strings.Repeat("  ", level+1)
		for _, item := range v {
			switch item.(type) {
			case map[string]interface{}, []interface{}:
				fmt.Fprintf(result, "%s-\n", itemIndent)
				writeVariable(result, "", item, level+2, styled)
			default:
				fmt.Fprintf(result, "%s- %v\n", itemIndent, item)
			}
		}
		fmt.Fprintf(result, "%s]\n", indent)
	default:
		fmt.Fprintf(result, "%s%s = %v\n", indent, name, v)
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
