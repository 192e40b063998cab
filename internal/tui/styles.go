package tui

import "github.com/charmbracelet/lipgloss"

const iconDot = "•"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#6E40C9")).
			Padding(0, 1)
	normalStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	selectedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#BC8CFF")).Bold(true)
	selectedBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BC8CFF"))
	kindStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#58A6FF"))
	repoStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B949E"))
	timeStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E7681"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F85149"))
)
