// Package tui provides the terminal dashboard for monitoring PR builds using bubbletea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/prdash/internal/browser"
	"github.com/npratt/prdash/internal/build"
	"github.com/npratt/prdash/internal/dashboard"
)

// Refresher drives the polling loops behind the dashboard tiles.
type Refresher interface {
	Rebuild()
	RefreshNow(index int)
	DetachAll()
}

// TUI is the terminal dashboard.
type TUI struct {
	store     *dashboard.Store
	refresher Refresher
	newRecord func(prNumber string) build.Record
	statePath string
	openURL   func(url string) error
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI backed by the given store and options.
func New(store *dashboard.Store, opts ...Option) *TUI {
	t := &TUI{
		store:   store,
		openURL: browser.OpenURL,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithRefresher sets the scheduler driving per-tile refreshes.
func WithRefresher(r Refresher) Option {
	return func(t *TUI) {
		t.refresher = r
	}
}

// WithNewRecord sets the factory for placeholder records when a PR is added.
func WithNewRecord(fn func(prNumber string) build.Record) Option {
	return func(t *TUI) {
		t.newRecord = fn
	}
}

// WithStatePath sets the file path tracked PRs are persisted to.
func WithStatePath(path string) Option {
	return func(t *TUI) {
		t.statePath = path
	}
}

// WithOpenURL overrides how URLs are opened in the browser.
func WithOpenURL(fn func(url string) error) Option {
	return func(t *TUI) {
		t.openURL = fn
	}
}

// Run starts the TUI and blocks until it exits.
func (t *TUI) Run() error {
	m := newModel(t.store, t.refresher, t.newRecord, t.statePath, t.openURL)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
