package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("69")
	colorMuted   = lipgloss.Color("243")
	colorError   = lipgloss.Color("203")
	colorSpinner = lipgloss.Color("205")
	colorBar     = lipgloss.Color("75")

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	ActiveTab   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("231")).Background(colorAccent)
	InactiveTab = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted)

	LabelStyle = lipgloss.NewStyle().Bold(true)
	HintStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	ButtonStyle         = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("231")).Background(colorAccent)
	DisabledButtonStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted).Background(lipgloss.Color("236"))

	AlertStyle = lipgloss.NewStyle().Foreground(colorError).Border(lipgloss.RoundedBorder()).BorderForeground(colorError).Padding(0, 1)

	BarStyle      = lipgloss.NewStyle().Foreground(colorBar)
	SkeletonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ScoreStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	PanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
