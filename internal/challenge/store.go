package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/avashisht/grind/internal/model"
)

// RemoteState is the combined result of one progress fetch. Either field may
// be nil when the backend has no record yet (e.g. before the first toggle of
// a brand-new challenge).
type RemoteState struct {
	Today    *model.DailyLog
	Progress *model.ProgressSummary
}

// Loader is the remote read collaborator. Implementations must honor ctx.
type Loader interface {
	FetchProgress(ctx context.Context) (RemoteState, error)
}

// Snapshot is an immutable view of the store; every field is a deep copy.
type Snapshot struct {
	Today       model.DailyLog
	HasToday    bool
	Progress    model.ProgressSummary
	HasProgress bool
	LoadedAt    time.Time
}

// Store holds the last server-confirmed state for today's log and the
// progress summary. It is written from goroutines spawned by the UI loop, so
// every access goes through the mutex.
type Store struct {
	mu       sync.RWMutex
	today    *model.DailyLog
	progress *model.ProgressSummary
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Load fetches the remote state and replaces the entire held state with it.
// On failure the store keeps whatever it held before, so a transient outage
// never blanks an already-rendered dashboard. There is no silent retry; the
// caller decides how to surface the error.
func (s *Store) Load(ctx context.Context, loader Loader) (Snapshot, error) {
	remote, err := loader.FetchProgress(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.Replace(remote, time.Now().UTC())
	return s.Snapshot(), nil
}

// Replace swaps in a full fetch result wholesale. The store never merges two
// fetch generations.
func (s *Store) Replace(remote RemoteState, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today = cloneLog(remote.Today)
	s.progress = cloneSummary(remote.Progress)
	s.loadedAt = at
}

// ApplyConfirmed installs the server's authoritative response to a single
// task mutation. Besides replacing today's log, it patches the matching
// history entry in the progress summary by calendar date. If no history entry
// matches yet — today's row has not been produced by a full refresh — the
// history part is deliberately a no-op and the next Load reconciles it.
// Calling this twice with the same log is idempotent.
func (s *Store) ApplyConfirmed(updated model.DailyLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned := updated.Clone()
	s.today = &cloned
	if s.progress == nil {
		return
	}
	for i := range s.progress.History {
		if model.SameDate(s.progress.History[i].Date, updated.Date) {
			s.progress.History[i] = updated.Clone()
			return
		}
	}
}

// Snapshot returns a deep-copied view safe to hand to renderers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{LoadedAt: s.loadedAt}
	if s.today != nil {
		snap.Today = s.today.Clone()
		snap.HasToday = true
	}
	if s.progress != nil {
		snap.Progress = s.progress.Clone()
		snap.HasProgress = true
	}
	return snap
}

func cloneLog(in *model.DailyLog) *model.DailyLog {
	if in == nil {
		return nil
	}
	out := in.Clone()
	return &out
}

func cloneSummary(in *model.ProgressSummary) *model.ProgressSummary {
	if in == nil {
		return nil
	}
	out := in.Clone()
	return &out
}
