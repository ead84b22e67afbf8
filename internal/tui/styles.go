package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusedPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)

	imageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("117"))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("229"))
	pendingStyle  = lipgloss.NewStyle().Faint(true).Underline(true)
	draggingStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)
