package tui

import "github.com/charmbracelet/lipgloss"

// sidebarWidth is the fixed width of the container/stack list
const sidebarWidth = 28

// Colors
var (
	runningColor  = lipgloss.Color("10") // Green
	stoppedColor  = lipgloss.Color("8")  // Gray
	selectedColor = lipgloss.Color("12") // Blue
	headerBg      = lipgloss.Color("235")
	dimColor      = lipgloss.Color("8")
	errorColor    = lipgloss.Color("9")
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Background(headerBg).
			Padding(0, 1).
			Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(dimColor)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(selectedColor).
				Bold(true)

	runningItemStyle = lipgloss.NewStyle().
				Foreground(runningColor)

	stoppedItemStyle = lipgloss.NewStyle().
				Foreground(stoppedColor)

	stackItemStyle = lipgloss.NewStyle().
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
