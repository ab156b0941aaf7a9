package style

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// colorDef is one adaptive color entry in styles.yaml.
type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// themeFile is the parsed styles.yaml document.
type themeFile struct {
	Colors map[string]colorDef `yaml:"colors"`
}

//go:embed styles.yaml
var rawTheme []byte

// themeColors maps semantic color names to their adaptive values.
var themeColors = loadTheme(rawTheme)

// loadTheme parses the embedded palette. A broken document yields an
// empty palette, themeColor then serves its neutral fallback.
func loadTheme(data []byte) map[string]lipgloss.AdaptiveColor {
	var theme themeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return map[string]lipgloss.AdaptiveColor{}
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(theme.Colors))
	for name, def := range theme.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	return colors
}

// themeColor retrieves a named color from the palette.
func themeColor(name string) lipgloss.AdaptiveColor {
	if color, ok := themeColors[name]; ok {
		return color
	}
	return lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
}
