package ui

import "github.com/charmbracelet/lipgloss"

var (
	confirmedColor = lipgloss.Color("6") // cyan
	deathsColor    = lipgloss.Color("1") // red
	recoveredColor = lipgloss.Color("3") // yellow

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(deathsColor)

	legendStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(confirmedColor),
		lipgloss.NewStyle().Foreground(deathsColor),
		lipgloss.NewStyle().Foreground(recoveredColor),
	}
)
