package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/reminder"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "grind-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestDayRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	day := model.DailyLog{
		UserID: "u1",
		Date:   "2026-08-29",
		TaskLogs: []model.TaskLogEntry{
			{TaskCode: "pushups", Value: "100 reps", Note: "felt strong", Completed: true},
			{TaskCode: "reading", Completed: false},
		},
	}
	require.NoError(t, repo.SaveDay(ctx, day))

	got, err := repo.GetDay(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, day, got)
}

func TestSaveDayOverwritesSameDate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := model.DailyLog{Date: "2026-08-29"}
	require.NoError(t, repo.SaveDay(ctx, first))

	second := first
	second.TaskLogs = []model.TaskLogEntry{{TaskCode: "squats", Completed: true}}
	second.IsFullyCompleted = false
	require.NoError(t, repo.SaveDay(ctx, second))

	got, err := repo.GetDay(ctx, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, got.TaskLogs, 1)
	assert.Equal(t, "squats", got.TaskLogs[0].TaskCode)
}

func TestGetDayNotFound(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.GetDay(context.Background(), "2026-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveDayRequiresDate(t *testing.T) {
	repo := setupRepo(t)
	err := repo.SaveDay(context.Background(), model.DailyLog{})
	require.Error(t, err)
}

func TestSummaryRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	summary := model.ProgressSummary{
		History: []model.DailyLog{
			{Date: "2026-08-27"},
			{Date: "2026-08-28"},
			{Date: "2026-08-29"},
		},
		TotalDays:             60,
		ActiveDays:            20,
		PerfectDays:           8,
		ConsistencyPercentage: 33.3,
		CompletionPercentage:  41.7,
	}
	fetchedAt := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.SaveSummary(ctx, summary, fetchedAt))

	got, gotAt, err := repo.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary, got)
	assert.True(t, gotAt.Equal(fetchedAt))
	// Chronological order preserved through the cache.
	assert.Equal(t, "2026-08-27", got.History[0].Date)
	assert.Equal(t, "2026-08-29", got.History[2].Date)
}

func TestSummaryNotFound(t *testing.T) {
	repo := setupRepo(t)
	_, _, err := repo.GetSummary(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReminderSlotRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.GetReminderSlot(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	slot := reminder.Slot{Date: "2026-08-29", Hour: 14}
	require.NoError(t, repo.SaveReminderSlot(ctx, slot))
	got, err := repo.GetReminderSlot(ctx)
	require.NoError(t, err)
	assert.Equal(t, slot, got)

	later := reminder.Slot{Date: "2026-08-29", Hour: 20}
	require.NoError(t, repo.SaveReminderSlot(ctx, later))
	got, err = repo.GetReminderSlot(ctx)
	require.NoError(t, err)
	assert.Equal(t, later, got)
}

func TestMigrateDown(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, MigrateDown(repo.db))
	_, err := repo.GetDay(context.Background(), "2026-08-29")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	// setupRepo already migrated; a second run must skip recorded versions.
	require.NoError(t, MigrateUp(repo.db))

	var count int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)

	day := model.DailyLog{Date: "2026-08-29"}
	require.NoError(t, repo.SaveDay(context.Background(), day))
	got, err := repo.GetDay(context.Background(), "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, day, got)
}

func TestMigrateDownThenUpRestoresSchema(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, MigrateDown(repo.db))
	require.NoError(t, MigrateUp(repo.db))
	_, err := repo.GetDay(context.Background(), "2026-08-29")
	assert.ErrorIs(t, err, ErrNotFound)
}
