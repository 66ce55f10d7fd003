package tui

import "github.com/charmbracelet/lipgloss"

// Palette matching the web page
var (
	ColorFg      = lipgloss.Color("#F8FAFC")
	ColorFgMuted = lipgloss.Color("#94A3B8")
	ColorGold    = lipgloss.Color("#FACC15")
	ColorGreen   = lipgloss.Color("#4ADE80")
	ColorRed     = lipgloss.Color("#F87171")
	ColorAmber   = lipgloss.Color("#FBBF24")
	ColorBorder  = lipgloss.Color("#334155")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true).
			PaddingLeft(1)

	// Option picker
	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			PaddingLeft(2)

	OptionSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorGold).
				Bold(true)

	OptionLockedStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted).
				PaddingLeft(2)

	QuizStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// Verdict
	AlignedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	MisalignedStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAmber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)
