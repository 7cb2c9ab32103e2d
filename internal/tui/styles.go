package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/prdash/internal/build"
)

// styles contains all lipgloss styles used by the dashboard.
var styles = struct {
	// Header styles
	Title lipgloss.Style
	Count lipgloss.Style

	// Footer style
	Footer lipgloss.Style

	// Status bar styles
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
	InputLabel  lipgloss.Style

	// Grid styles
	Empty lipgloss.Style

	// Tile container styles
	Tile         lipgloss.Style
	TileSelected lipgloss.Style

	// Tile content styles
	TileTitle    lipgloss.Style
	TileStage    lipgloss.Style
	TileJob      lipgloss.Style
	TileDuration lipgloss.Style
	TileError    lipgloss.Style
}{
	// Header styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Count: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	// Footer style
	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	// Status bar styles
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	InputLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")),

	// Grid styles
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	// Tile container styles
	Tile: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1),

	TileSelected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")). // Bright blue for selection
		Padding(0, 1),

	// Tile content styles
	TileTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")),

	TileStage: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	TileJob: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	TileDuration: lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")),

	TileError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
}

// statusStyles maps build statuses to their display colors.
var statusStyles = map[build.Status]lipgloss.Style{
	build.StatusPending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	build.StatusRunning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220")),

	build.StatusSuccess: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	build.StatusFailure: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196")),

	build.StatusUnstable: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),

	build.StatusAborted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	build.StatusError: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196")),
}

// statusStyle returns the display style for a build status.
func statusStyle(s build.Status) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return statusStyles[build.StatusPending]
}
