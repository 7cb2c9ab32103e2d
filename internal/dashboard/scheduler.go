package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/npratt/prdash/internal/build"
	"github.com/npratt/prdash/internal/jenkins"
)

// DefaultRefreshInterval is the period between refreshes of one tile.
const DefaultRefreshInterval = 10 * time.Second

// Fetcher retrieves the current status of a build. prNumber identifies
// the tracked PR independently of the branch Jenkins builds it under.
// Implementations never return errors; failures are encoded in the record
// itself.
type Fetcher interface {
	FetchBuild(ctx context.Context, jobPath, branch, prNumber string, buildNumber int) build.Record
}

// BranchResolver maps a PR number to the branch name Jenkins builds it
// under. Implementations fall back to the PR-<number> convention internally.
type BranchResolver interface {
	BranchForPR(ctx context.Context, prNumber string) string
}

// Scheduler runs one periodic refresh task per displayed tile, writing
// results back through Store.ReplaceAt. Tasks are keyed by display index,
// so the owner must DetachAll and re-Attach whenever the list changes by
// anything other than an in-place replace.
//
// Every fetch carries the rebuild generation current at launch; a result
// whose generation is stale by completion is discarded, so a task that
// outlives a rebuild can never write to a recycled index.
type Scheduler struct {
	store    *Store
	fetcher  Fetcher
	resolver BranchResolver
	interval time.Duration

	mu      sync.Mutex
	gen     uint64
	cancels map[int]context.CancelFunc
	wg      sync.WaitGroup
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithBranchResolver sets an optional resolver for PR head branches.
// Without one the scheduler uses the PR-<number> convention.
func WithBranchResolver(r BranchResolver) SchedulerOption {
	return func(s *Scheduler) {
		s.resolver = r
	}
}

// WithInterval overrides the refresh period.
func WithInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewScheduler creates a Scheduler writing into store via fetcher.
func NewScheduler(store *Store, fetcher Fetcher, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		store:    store,
		fetcher:  fetcher,
		interval: DefaultRefreshInterval,
		cancels:  make(map[int]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach starts the periodic refresh task for index. Attaching an index
// that already has a task is a no-op.
func (s *Scheduler) Attach(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cancels[index]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[index] = cancel
	gen := s.gen

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refresh(ctx, index, gen)
			}
		}
	}()
}

// DetachAll cancels every periodic task, advances the generation so any
// still-in-flight fetch result is discarded, and waits for the task
// goroutines to exit. Must run before the index mapping is rebuilt.
func (s *Scheduler) DetachAll() {
	s.mu.Lock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = make(map[int]context.CancelFunc)
	s.gen++
	s.mu.Unlock()

	s.wg.Wait()
}

// Rebuild tears down every task and attaches fresh ones for each current
// store index. Call after any add, remove, or reorder.
func (s *Scheduler) Rebuild() {
	s.DetachAll()
	for i := 0; i < s.store.Len(); i++ {
		s.Attach(i)
	}
}

// RefreshNow launches a one-shot background fetch for index, used right
// after an add or edit so the interactive path never blocks on the
// network. The write-back tolerates the index having been invalidated.
func (s *Scheduler) RefreshNow(index int) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	go s.refresh(context.Background(), index, gen)
}

// refresh reads the current record at index, fetches its latest status,
// and writes the result back unless the task generation went stale while
// the fetch was in flight.
func (s *Scheduler) refresh(ctx context.Context, index int, gen uint64) {
	rec, ok := s.store.At(index)
	if !ok || rec.JobPath == "" {
		return
	}

	branch := jenkins.BranchForPR(rec.PRNumber)
	if s.resolver != nil {
		branch = s.resolver.BranchForPR(ctx, rec.PRNumber)
	}

	result := s.fetcher.FetchBuild(ctx, rec.JobPath, branch, rec.PRNumber, rec.BuildNumber)

	if ctx.Err() != nil || s.stale(gen) {
		slog.Debug("discarding stale refresh result",
			"index", index, "pr", rec.PRNumber)
		return
	}
	s.store.ReplaceAt(index, result)
}

// stale reports whether gen predates the last rebuild.
func (s *Scheduler) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}
