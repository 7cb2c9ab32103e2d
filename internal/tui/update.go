package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/prdash/internal/build"
	"github.com/npratt/prdash/internal/dashboard"
	"github.com/npratt/prdash/internal/jenkins"
	"github.com/npratt/prdash/internal/state"
)

// tickInterval is the interval for status bar expiry checks.
const tickInterval = time.Second

// waitForChange creates a command that waits for the next store change.
// Returns changesClosedMsg if the channel is closed.
func waitForChange(ch <-chan dashboard.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return changesClosedMsg{}
		}
		return changeMsg(c)
	}
}

// doTick creates a command that waits for the tick interval and sends a tickMsg.
func doTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changeMsg:
		m.syncFromStore()
		return m, waitForChange(m.changes)

	case changesClosedMsg:
		// Store closed - clean exit
		slog.Info("store closed, exiting dashboard")
		return m, tea.Quit

	case tickMsg:
		if m.statusMsg != "" && time.Since(m.statusSetAt) > statusMessageTTL {
			m.statusMsg = ""
		}
		return m, doTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		m.mode = inputAdd
		m.input.Reset()
		m.input.Focus()
		return m, nil

	case "e":
		if len(m.records) == 0 {
			return m, nil
		}
		m.mode = inputEdit
		m.editIndex = m.selected
		m.input.Reset()
		m.input.SetValue(m.records[m.selected].PRNumber)
		m.input.CursorEnd()
		m.input.Focus()
		return m, nil

	case "d":
		m.removeSelected()
		return m, nil

	case "r":
		if m.refresher != nil && len(m.records) > 0 {
			m.refresher.RefreshNow(m.selected)
		}
		return m, nil

	case "enter", "o":
		m.openSelected(func(rec build.Record) string { return rec.BuildURL }, "build")
		return m, nil

	case "p":
		m.openSelected(func(rec build.Record) string { return rec.PRURL }, "PR")
		return m, nil

	case "left", "h":
		m.move(dashboard.Left)
		return m, nil

	case "right", "l":
		m.move(dashboard.Right)
		return m, nil

	case "up", "k":
		m.move(dashboard.Up)
		return m, nil

	case "down", "j":
		m.move(dashboard.Down)
		return m, nil

	default:
		return m, nil
	}
}

// handleInputKey processes keyboard input while the PR input line is open.
func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		return m.submitInput()

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// submitInput validates the typed PR number and applies the add or edit.
func (m model) submitInput() (tea.Model, tea.Cmd) {
	num, err := jenkins.ParsePRNumber(m.input.Value())
	if err != nil {
		// Keep the input open so the user can fix it
		m.setStatus(fmt.Sprintf("invalid PR number: %v", err), true)
		return m, nil
	}

	rec := m.newRecord(num)

	switch m.mode {
	case inputAdd:
		idx := m.store.Add(rec)
		m.store.Select(idx)
		m.rebuildAndRefresh(idx)
		m.setStatus("tracking PR-"+num, false)

	case inputEdit:
		if m.store.ReplaceAt(m.editIndex, rec) {
			m.store.Select(m.editIndex)
			m.rebuildAndRefresh(m.editIndex)
			m.setStatus("now tracking PR-"+num, false)
		}
	}

	m.persist()
	m.closeInput()
	m.syncFromStore()
	return m, nil
}

// closeInput hides and resets the PR input line.
func (m *model) closeInput() {
	m.mode = inputNone
	m.editIndex = -1
	m.input.Reset()
	m.input.Blur()
}

// removeSelected deletes the selected tile and rewires the refresh loops.
func (m *model) removeSelected() {
	if len(m.records) == 0 {
		return
	}

	removed := m.records[m.selected]
	if !m.store.RemoveAt(m.selected) {
		return
	}
	if m.refresher != nil {
		m.refresher.Rebuild()
	}
	m.persist()
	m.syncFromStore()
	m.setStatus("removed PR-"+removed.PRNumber, false)
}

// move shifts the selection and refreshes the display snapshot.
func (m *model) move(dir dashboard.Direction) {
	m.store.Move(dir)
	m.syncFromStore()
}

// openSelected opens a URL from the selected record in the browser.
func (m *model) openSelected(urlOf func(build.Record) string, what string) {
	rec, ok := m.store.Selected()
	if !ok {
		return
	}

	url := urlOf(rec)
	if url == "" {
		m.setStatus("no "+what+" link yet", true)
		return
	}

	if err := m.openURL(url); err != nil {
		slog.Warn("failed to open browser", "url", url, "error", err)
		m.setStatus(fmt.Sprintf("failed to open %s: %v", what, err), true)
		return
	}
	m.setStatus("opening "+what+" for PR-"+rec.PRNumber, false)
}

// rebuildAndRefresh rewires the refresh loops and kicks an immediate
// fetch for the given tile.
func (m *model) rebuildAndRefresh(index int) {
	if m.refresher == nil {
		return
	}
	m.refresher.Rebuild()
	m.refresher.RefreshNow(index)
}

// persist saves the tracked PRs to the state file.
func (m *model) persist() {
	if m.statePath == "" {
		return
	}

	records, _ := m.store.Snapshot()
	if err := state.Save(m.statePath, records); err != nil {
		slog.Warn("failed to save state", "path", m.statePath, "error", err)
		m.setStatus(fmt.Sprintf("failed to save state: %v", err), true)
	}
}
