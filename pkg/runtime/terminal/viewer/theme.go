package viewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/de-tools/runai-atlas/pkg/adapters"
)

type Theme struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Selected    lipgloss.Style
	Faint       lipgloss.Style
	Status      lipgloss.Style
	Detail      lipgloss.Style

	// IconColors maps the row icon colour names to terminal colours.
	IconColors map[string]lipgloss.Color
}

var DefaultTheme = Theme{
	ActiveTab:   lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
	InactiveTab: lipgloss.NewStyle().Faint(true).Padding(0, 1),
	Selected:    lipgloss.NewStyle().Bold(true),
	Faint:       lipgloss.NewStyle().Faint(true),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Detail:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	IconColors: map[string]lipgloss.Color{
		adapters.ColorGreen:  lipgloss.Color("2"),
		adapters.ColorYellow: lipgloss.Color("3"),
		adapters.ColorRed:    lipgloss.Color("1"),
	},
}

func (t Theme) icon(color string) lipgloss.Style {
	if c, ok := t.IconColors[color]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}
