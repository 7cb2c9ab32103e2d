package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/npratt/prdash/internal/build"
)

const (
	// tileWidth is the inner content width of one tile.
	tileWidth = 34
	// tileLines is the number of content lines in one tile.
	tileLines = 5
)

// renderTile renders one PR's status tile.
func (m model) renderTile(index int, rec build.Record) string {
	lines := []string{
		m.tileTitleLine(rec),
		m.tileStatusLine(rec),
		styles.TileStage.Render(truncate("stage: "+orUnknown(rec.Stage), tileWidth)),
		styles.TileJob.Render(truncate(orUnknown(rec.JobName), tileWidth)),
		m.tileBottomLine(rec),
	}

	content := strings.Join(lines, "\n")

	style := styles.Tile
	if index == m.selected {
		style = styles.TileSelected
	}

	return style.Width(tileWidth).Render(content)
}

// tileTitleLine renders "PR-1234  #56".
func (m model) tileTitleLine(rec build.Record) string {
	title := "PR-" + rec.PRNumber
	if rec.BuildNumber > 0 {
		title += fmt.Sprintf("  #%d", rec.BuildNumber)
	}
	return styles.TileTitle.Render(truncate(title, tileWidth))
}

// tileStatusLine renders the colored status, with a spinner while running.
func (m model) tileStatusLine(rec build.Record) string {
	text := rec.Status.String()
	if rec.IsRunning() {
		return m.spinner.View() + statusStyle(rec.Status).Render(text)
	}
	return statusStyle(rec.Status).Render(text)
}

// tileBottomLine renders the fetch error if there is one, else the
// duration and last update time.
func (m model) tileBottomLine(rec build.Record) string {
	if rec.ErrorMessage != "" {
		return styles.TileError.Render(truncate(rec.ErrorMessage, tileWidth))
	}

	line := rec.FormatDuration()
	if !rec.LastUpdated.IsZero() {
		line += "  @" + rec.LastUpdated.Format("15:04:05")
	}
	return styles.TileDuration.Render(truncate(line, tileWidth))
}

// orUnknown substitutes the display default for fields the fetch could
// not fill in.
func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// truncate shortens s to fit within width terminal cells, keeping runes
// whole and accounting for wide characters.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
