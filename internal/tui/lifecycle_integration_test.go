package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/npratt/prdash/internal/build"
	"github.com/npratt/prdash/internal/dashboard"
)

// TestDashboardLifecycleSmoke verifies the full bubbletea program lifecycle:
// start, render tracked PRs, handle keyboard input, and quit cleanly.
// This test uses teatest to run the dashboard headlessly without a real TTY.
func TestDashboardLifecycleSmoke(t *testing.T) {
	store := dashboard.NewStore()
	defer store.Close()
	store.Add(placeholderFor("3859"))

	m := newModel(
		store,
		&fakeRefresher{},
		placeholderFor,
		"", // no state file
		func(string) error { return nil },
	)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(120, 40),
	)

	// Wait briefly for Init to complete
	time.Sleep(50 * time.Millisecond)

	// Move selection around
	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	tm.Send(tea.KeyMsg{Type: tea.KeyLeft})

	// Send quit key to trigger clean exit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	if fm == nil {
		t.Fatal("FinalModel returned nil")
	}

	out := tm.FinalOutput(t, teatest.WithFinalTimeout(5*time.Second))
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(out)
	output := buf.String()

	if !strings.Contains(output, "PR-3859") {
		t.Error("expected dashboard output to contain the tracked PR")
	}
}

// TestDashboardQuitOnStoreClose verifies the program exits when the
// store's change feed closes.
func TestDashboardQuitOnStoreClose(t *testing.T) {
	store := dashboard.NewStore()

	m := newModel(
		store,
		&fakeRefresher{},
		placeholderFor,
		"",
		func(string) error { return nil },
	)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(120, 40),
	)

	time.Sleep(50 * time.Millisecond)
	store.Close()

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	if fm == nil {
		t.Fatal("FinalModel returned nil")
	}
}

// TestAddRecordUpdatesRendering verifies a record added behind the TUI's
// back shows up via the change feed.
func TestAddRecordUpdatesRendering(t *testing.T) {
	store := dashboard.NewStore()
	defer store.Close()

	m := newModel(
		store,
		&fakeRefresher{},
		placeholderFor,
		"",
		func(string) error { return nil },
	)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(120, 40),
	)

	time.Sleep(50 * time.Millisecond)

	rec := placeholderFor("777")
	rec.Status = build.StatusSuccess
	store.Add(rec)

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("PR-777"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
}
