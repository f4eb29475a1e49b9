package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avashisht/grind/internal/model"
)

type stubLoader struct {
	state RemoteState
	err   error
	calls int
}

func (l *stubLoader) FetchProgress(ctx context.Context) (RemoteState, error) {
	l.calls++
	if l.err != nil {
		return RemoteState{}, l.err
	}
	return l.state, nil
}

func day(date string, entries ...model.TaskLogEntry) model.DailyLog {
	return model.DailyLog{UserID: "u1", Date: date, TaskLogs: entries}
}

func TestLoadReplacesWholeState(t *testing.T) {
	store := NewStore()
	first := day("2026-08-28", model.TaskLogEntry{TaskCode: "pushups", Completed: true})
	store.Replace(RemoteState{Today: &first}, time.Now().UTC())

	second := day("2026-08-29")
	loader := &stubLoader{state: RemoteState{
		Today:    &second,
		Progress: &model.ProgressSummary{TotalDays: 3, History: []model.DailyLog{first}},
	}}
	snap, err := store.Load(context.Background(), loader)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !snap.HasToday || snap.Today.Date != "2026-08-29" {
		t.Fatalf("expected replaced today, got %+v", snap.Today)
	}
	if len(snap.Today.TaskLogs) != 0 {
		t.Fatalf("old fetch generation leaked into new state: %+v", snap.Today.TaskLogs)
	}
	if !snap.HasProgress || snap.Progress.TotalDays != 3 {
		t.Fatalf("expected progress summary, got %+v", snap.Progress)
	}
}

func TestLoadFailureKeepsPreviousState(t *testing.T) {
	store := NewStore()
	today := day("2026-08-29", model.TaskLogEntry{TaskCode: "reading", Completed: true})
	store.Replace(RemoteState{Today: &today}, time.Now().UTC())

	loader := &stubLoader{err: errors.New("backend down")}
	if _, err := store.Load(context.Background(), loader); err == nil {
		t.Fatal("expected load error")
	}
	snap := store.Snapshot()
	if !snap.HasToday || snap.Today.Date != "2026-08-29" {
		t.Fatalf("failed load must not disturb held state, got %+v", snap)
	}
}

func TestApplyConfirmedPatchesMatchingHistoryEntry(t *testing.T) {
	store := NewStore()
	today := day("2026-08-29")
	store.Replace(RemoteState{
		Today: &today,
		Progress: &model.ProgressSummary{History: []model.DailyLog{
			day("2026-08-28"),
			day("2026-08-29T00:00:00Z"),
		}},
	}, time.Now().UTC())

	updated := day("2026-08-29", model.TaskLogEntry{TaskCode: "pushups", Completed: true})
	store.ApplyConfirmed(updated)

	snap := store.Snapshot()
	if len(snap.Today.TaskLogs) != 1 || !snap.Today.TaskLogs[0].Completed {
		t.Fatalf("today not replaced: %+v", snap.Today)
	}
	patched := snap.Progress.History[1]
	if len(patched.TaskLogs) != 1 || patched.TaskLogs[0].TaskCode != "pushups" {
		t.Fatalf("history entry for today not patched by calendar date: %+v", patched)
	}
	if len(snap.Progress.History[0].TaskLogs) != 0 {
		t.Fatalf("unrelated history entry mutated: %+v", snap.Progress.History[0])
	}
}

func TestApplyConfirmedWithoutHistoryMatchIsNoOpForHistory(t *testing.T) {
	store := NewStore()
	today := day("2026-08-29")
	store.Replace(RemoteState{
		Today:    &today,
		Progress: &model.ProgressSummary{History: []model.DailyLog{day("2026-08-28")}},
	}, time.Now().UTC())

	store.ApplyConfirmed(day("2026-08-29", model.TaskLogEntry{TaskCode: "squats", Completed: true}))

	snap := store.Snapshot()
	if len(snap.Progress.History) != 1 || snap.Progress.History[0].Date != "2026-08-28" {
		t.Fatalf("history must stay untouched when today has no entry yet: %+v", snap.Progress.History)
	}
	if !snap.HasToday || len(snap.Today.TaskLogs) != 1 {
		t.Fatalf("today must still be replaced: %+v", snap.Today)
	}
}

func TestApplyConfirmedIsIdempotent(t *testing.T) {
	store := NewStore()
	today := day("2026-08-29")
	store.Replace(RemoteState{
		Today:    &today,
		Progress: &model.ProgressSummary{History: []model.DailyLog{day("2026-08-29")}},
	}, time.Now().UTC())

	updated := day("2026-08-29", model.TaskLogEntry{TaskCode: "running", Completed: true})
	store.ApplyConfirmed(updated)
	once := store.Snapshot()
	store.ApplyConfirmed(updated)
	twice := store.Snapshot()

	if len(once.Today.TaskLogs) != len(twice.Today.TaskLogs) {
		t.Fatalf("today diverged after second apply: %+v vs %+v", once.Today, twice.Today)
	}
	if len(once.Progress.History[0].TaskLogs) != len(twice.Progress.History[0].TaskLogs) {
		t.Fatalf("history diverged after second apply")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store := NewStore()
	today := day("2026-08-29", model.TaskLogEntry{TaskCode: "pushups"})
	store.Replace(RemoteState{Today: &today}, time.Now().UTC())

	snap := store.Snapshot()
	snap.Today.TaskLogs[0].Completed = true

	if store.Snapshot().Today.TaskLogs[0].Completed {
		t.Fatal("mutating a snapshot must not reach the store")
	}
}

func TestSnapshotOnEmptyStore(t *testing.T) {
	snap := NewStore().Snapshot()
	if snap.HasToday || snap.HasProgress {
		t.Fatalf("empty store should report nothing held: %+v", snap)
	}
}
