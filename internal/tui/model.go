package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/prdash/internal/build"
	"github.com/npratt/prdash/internal/dashboard"
)

// inputMode says what the text input line is currently collecting.
type inputMode int

const (
	// inputNone means the input line is hidden.
	inputNone inputMode = iota
	// inputAdd collects a PR number for a new tile.
	inputAdd
	// inputEdit collects a replacement PR number for the tile at editIndex.
	inputEdit
)

const (
	// statusMessageTTL is how long a status bar message stays visible.
	statusMessageTTL = 5 * time.Second
	// prInputLimit caps the PR number input length.
	prInputLimit = 16
)

// model is the bubbletea model for the dashboard.
type model struct {
	// Wiring
	store     *dashboard.Store
	refresher Refresher
	newRecord func(prNumber string) build.Record
	statePath string
	openURL   func(url string) error

	// Store change feed
	changes <-chan dashboard.Change

	// Display snapshot of the store
	records  []build.Record
	selected int

	// UI state
	width  int
	height int

	input     textinput.Model
	mode      inputMode
	editIndex int

	spinner spinner.Model

	statusMsg   string
	statusIsErr bool
	statusSetAt time.Time
}

// changeMsg wraps a store change for the bubbletea message system.
type changeMsg dashboard.Change

// changesClosedMsg signals that the store's change channel was closed.
type changesClosedMsg struct{}

// tickMsg signals a periodic tick for status bar expiry.
type tickMsg time.Time

// newModel creates a new model with the given configuration.
func newModel(
	store *dashboard.Store,
	refresher Refresher,
	newRecord func(prNumber string) build.Record,
	statePath string,
	openURL func(url string) error,
) model {
	ti := textinput.New()
	ti.Placeholder = "3859 or PR-3859"
	ti.CharLimit = prInputLimit
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	m := model{
		store:     store,
		refresher: refresher,
		newRecord: newRecord,
		statePath: statePath,
		openURL:   openURL,
		changes:   store.Subscribe(),
		input:     ti,
		editIndex: -1,
	}
	m.syncFromStore()
	return m
}

// syncFromStore refreshes the display snapshot from the store.
func (m *model) syncFromStore() {
	m.records, m.selected = m.store.Snapshot()
}

// setStatus replaces the status bar message.
func (m *model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
	m.statusSetAt = time.Now()
}

// anyRunning reports whether any tile is showing an in-progress build.
func (m model) anyRunning() bool {
	for _, rec := range m.records {
		if rec.IsRunning() {
			return true
		}
	}
	return false
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		m.spinner.Tick,
		doTick(),
		tea.EnterAltScreen,
	)
}

// Update and handleKey are implemented in update.go
// View is implemented in view.go
