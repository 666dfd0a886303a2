package ui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	HeaderHeight = 1
	FooterHeight = 2
	MinListWidth = 30
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0"))

	nowPlayingStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2)

	playingMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD75F")).
				Bold(true)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Foreground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	searchLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7D56F4"))

	volumeBarFilled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	volumeBarEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3C3C3C"))
)
