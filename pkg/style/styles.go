// Package style defines the terminal look of dotr's output: the
// color palette, the semantic text styles and the renderer that turns
// command results into styled text.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	// Headers and titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(themeColor("heading")).
			Bold(true)

	// Text styles
	NormalStyle = lipgloss.NewStyle().
			Foreground(themeColor("text"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(themeColor("muted"))

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(themeColor("success")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(themeColor("error")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(themeColor("warning")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(themeColor("info"))

	// Path and code styles
	PathStyle = lipgloss.NewStyle().
			Foreground(themeColor("secondary")).
			Italic(true)

	// Banner style
	BannerStyle = lipgloss.NewStyle().
			Foreground(themeColor("primary"))
)

// Domain styles
var (
	PackageStyle = lipgloss.NewStyle().
			Foreground(themeColor("package")).
			Bold(true)

	ProfileStyle = lipgloss.NewStyle().
			Foreground(themeColor("profile")).
			Bold(true)

	VariableStyle = lipgloss.NewStyle().
			Foreground(themeColor("info"))
)

// Diff styles
var (
	DiffAddStyle  = lipgloss.NewStyle().Foreground(themeColor("diff_add"))
	DiffDelStyle  = lipgloss.NewStyle().Foreground(themeColor("diff_del"))
	DiffHunkStyle = lipgloss.NewStyle().Foreground(themeColor("diff_hunk"))
)

// Operation indicator styles
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
)

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
