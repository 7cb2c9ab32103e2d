package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// minWidth is the smallest terminal width the dashboard renders at.
	minWidth = 40
	// minHeight is the smallest terminal height the dashboard renders at.
	minHeight = 10
)

// View implements tea.Model. This renders the full dashboard display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderGrid())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderTooSmall renders a message when the terminal is too small.
func (m model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
		m.width, m.height, minWidth, minHeight)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// renderHeader renders the title line with the tracked PR count.
func (m model) renderHeader() string {
	title := styles.Title.Render("PR Dashboard")
	count := styles.Count.Render(fmt.Sprintf("%d tracked", len(m.records)))
	return title + "  " + count
}

// renderGrid renders the status tiles, wrapping into rows by terminal width.
func (m model) renderGrid() string {
	if len(m.records) == 0 {
		return styles.Empty.Render("No PRs tracked. Press 'a' to add one.")
	}

	// +4 accounts for tile borders and padding
	cols := max(1, m.width/(tileWidth+4))

	var rows []string
	for start := 0; start < len(m.records); start += cols {
		end := min(start+cols, len(m.records))

		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			tiles = append(tiles, m.renderTile(i, m.records[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderStatusBar renders the input line when open, else the latest status message.
func (m model) renderStatusBar() string {
	switch m.mode {
	case inputAdd:
		return styles.InputLabel.Render("Track PR: ") + m.input.View()
	case inputEdit:
		return styles.InputLabel.Render("Edit PR: ") + m.input.View()
	}

	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsErr {
		return styles.StatusError.Render(m.statusMsg)
	}
	return styles.StatusInfo.Render(m.statusMsg)
}

// renderFooter renders the key help line.
func (m model) renderFooter() string {
	var help string
	if m.mode != inputNone {
		help = "enter: confirm  esc: cancel"
	} else {
		help = "a: add  e: edit  d: remove  enter: open build  p: open PR  r: refresh  q: quit"
	}
	return styles.Footer.Render(help)
}
