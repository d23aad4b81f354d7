package preview

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("36")
	mutedColor  = lipgloss.Color("243")
	ruleColor   = lipgloss.Color("238")

	ownerStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	surnameStyle  = lipgloss.NewStyle().Bold(true).Foreground(mutedColor)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	subtleStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	selectedStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	tagStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	ruleStyle     = lipgloss.NewStyle().Foreground(ruleColor)

	glyphStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	fragmentStyle = lipgloss.NewStyle().Foreground(accentColor)
)
