package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors keep the view readable on light and dark terminals.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorSuccess    = ac("28", "42")
	colorDanger     = ac("160", "203")
	colorBorder     = ac("250", "243")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	styleHeader   = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
	styleDone     = lipgloss.NewStyle().Foreground(colorSuccess)
	styleError    = lipgloss.NewStyle().Foreground(colorDanger)
	styleBadge    = lipgloss.NewStyle().Foreground(colorMuted)
	styleToast    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(1, 2)
)
