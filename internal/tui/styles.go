package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	productStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)
