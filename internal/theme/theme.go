// Package theme holds the terminal UI palettes.
package theme

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/msgboard/internal/config"
)

// HotPink is the colour of the inline validation error in every palette.
const HotPink = lipgloss.Color("#FF69B4")

type Theme struct {
	Name string

	Heading  lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Pending  lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style

	// Control styles for the per-message save button.
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
}

var themes = map[string]Theme{
	config.DarkTheme:  newTheme(config.DarkTheme, "#EEEEEE", "#7D56F4", "#FFB86C", "#626262"),
	config.LightTheme: newTheme(config.LightTheme, "#1A1A1A", "#5A3FC0", "#B35900", "#9E9E9E"),
}

func newTheme(name string, fg, accent, pending, muted lipgloss.Color) Theme {
	return Theme{
		Name:     name,
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		Item:     lipgloss.NewStyle().Foreground(fg).PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true).PaddingLeft(1).SetString(">"),
		Pending:  lipgloss.NewStyle().Foreground(pending).SetString("*"),
		Error:    lipgloss.NewStyle().Foreground(HotPink),
		Status:   lipgloss.NewStyle().Foreground(HotPink).Italic(true),
		Help:     lipgloss.NewStyle().Foreground(muted),
		ButtonActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 1),
		ButtonInactive: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true).
			Padding(0, 1),
	}
}

// Get returns the named palette, or the default one when name is unknown.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[config.DefaultTheme]
}

func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
