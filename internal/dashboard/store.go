// Package dashboard owns the shared state of the build dashboard: the
// ordered list of tracked PRs with its selection cursor, and the per-item
// refresh scheduling that keeps each record current.
package dashboard

import (
	"log/slog"
	"sync"

	"github.com/npratt/prdash/internal/build"
)

// Direction is a selection movement. The tile list is logically 1-D even
// though it renders as a grid, so Left/Right are synonyms of Up/Down.
type Direction int

const (
	// Up moves the selection toward the start of the list.
	Up Direction = iota
	// Down moves the selection toward the end of the list.
	Down
	// Left moves the selection toward the start of the list.
	Left
	// Right moves the selection toward the end of the list.
	Right
)

// Change is a store mutation notification delivered to subscribers.
// Index refers to the record's position at the time of the change; for a
// removal, Record is the removed value.
type Change struct {
	Index   int
	Record  build.Record
	Removed bool
}

// subscriberBufferSize is the channel buffer for change subscribers.
const subscriberBufferSize = 64

// Store is the ordered collection of tracked PR records plus the selection
// cursor. It is the single piece of state shared between the interactive
// path and the background refresh tasks, so every operation is
// mutex-sequenced. Mutations are announced on subscriber channels with
// non-blocking sends.
type Store struct {
	mu          sync.RWMutex
	records     []build.Record
	selected    int
	subscribers []chan Change
	closed      bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a record and returns its index. The selection is unchanged;
// callers that want the new record selected follow up with Select.
func (s *Store) Add(rec build.Record) int {
	s.mu.Lock()
	s.records = append(s.records, rec)
	index := len(s.records) - 1
	s.mu.Unlock()

	s.emit(Change{Index: index, Record: rec})
	return index
}

// RemoveAt removes the record at index. Out-of-range indices are a no-op
// returning false. After removal the selection is clamped to the new end,
// or reset to 0 when the store empties.
func (s *Store) RemoveAt(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.records) {
		s.mu.Unlock()
		return false
	}

	removed := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)

	if len(s.records) == 0 {
		s.selected = 0
	} else if s.selected >= len(s.records) {
		s.selected = len(s.records) - 1
	}
	s.mu.Unlock()

	s.emit(Change{Index: index, Record: removed, Removed: true})
	return true
}

// ReplaceAt writes the result of a completed fetch into the given slot.
// An out-of-range index means the item was removed while the fetch was in
// flight; the write is silently dropped and false returned.
func (s *Store) ReplaceAt(index int, rec build.Record) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.records) {
		s.mu.Unlock()
		return false
	}
	s.records[index] = rec
	s.mu.Unlock()

	s.emit(Change{Index: index, Record: rec})
	return true
}

// At returns the record at index.
func (s *Store) At(index int) (build.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.records) {
		return build.Record{}, false
	}
	return s.records[index], true
}

// Len returns the number of tracked records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Selected returns the currently selected record, or ok=false when the
// store is empty.
func (s *Store) Selected() (build.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected < 0 || s.selected >= len(s.records) {
		return build.Record{}, false
	}
	return s.records[s.selected], true
}

// SelectedIndex returns the selection cursor.
func (s *Store) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select moves the selection to index, clamped into range.
func (s *Store) Select(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		s.selected = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.records) {
		index = len(s.records) - 1
	}
	s.selected = index
}

// Move shifts the selection one position. Up/Left decrement floored at 0,
// Down/Right increment ceilinged at the last index. No-op on an empty
// store.
func (s *Store) Move(dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return
	}

	switch dir {
	case Up, Left:
		if s.selected > 0 {
			s.selected--
		}
	case Down, Right:
		if s.selected < len(s.records)-1 {
			s.selected++
		}
	}
}

// Snapshot returns a copy of the records and the selection index for
// rendering. The copy is safe to read without holding any lock.
func (s *Store) Snapshot() ([]build.Record, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]build.Record, len(s.records))
	copy(records, s.records)
	return records, s.selected
}

// SetAll replaces the whole list, resetting the selection to 0. Used when
// loading persisted state at startup.
func (s *Store) SetAll(records []build.Record) {
	s.mu.Lock()
	s.records = make([]build.Record, len(records))
	copy(s.records, records)
	s.selected = 0
	s.mu.Unlock()
}

// Subscribe returns a channel receiving every store mutation. The channel
// is closed when the store is closed.
func (s *Store) Subscribe() <-chan Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Change, subscriberBufferSize)
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Close closes all subscriber channels. Further mutations still apply but
// are no longer announced.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}

// emit delivers a change to all subscribers without blocking: a full
// subscriber channel drops the change with a warning.
func (s *Store) emit(c Change) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, ch := range s.subscribers {
		select {
		case ch <- c:
		default:
			slog.Warn("store change dropped: subscriber channel full",
				"index", c.Index, "pr", c.Record.PRNumber)
		}
	}
}
