package update

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/avashisht/grind/internal/api"
	"github.com/avashisht/grind/internal/challenge"
	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/reminder"
	"github.com/avashisht/grind/internal/storage"
)

// loadCmd refreshes the store from the backend and mirrors the result into
// the local cache. Cache writes are best-effort; a broken cache never fails a
// successful fetch.
func (m Model) loadCmd() tea.Cmd {
	store := m.store
	backend := m.backend
	cache := m.cache
	logger := m.logger
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := store.Load(ctx, backend)
		if err != nil {
			return ProgressLoadFailedMsg{Err: err}
		}
		if cache != nil {
			persistSnapshot(cache, snap, logger)
		}
		return ProgressLoadedMsg{Snap: snap}
	}
}

func persistSnapshot(cache storage.Repository, snap challenge.Snapshot, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if snap.HasToday {
		if err := cache.SaveDay(ctx, snap.Today); err != nil {
			logger.WithError(err).Warn("cache day write failed")
		}
	}
	if snap.HasProgress {
		if err := cache.SaveSummary(ctx, snap.Progress, snap.LoadedAt); err != nil {
			logger.WithError(err).Warn("cache summary write failed")
		}
	}
}

// toggleCmd runs one quick-toggle mutation through the supersession
// controller. The confirmed apply and intent clear happen inside the
// controller's settlement section, so a racing newer toggle can never be
// overwritten by this one. The cache mirror runs after settlement, outside
// the controller's lock; toggles on other tasks never wait on the disk.
func (m Model) toggleCmd(intent challenge.PendingIntent) tea.Cmd {
	controller := m.controller
	backend := m.backend
	store := m.store
	intents := m.intents
	cache := m.cache
	logger := m.logger
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		req := api.ToggleRequest{Task: intent.TaskCode, Completed: intent.DesiredCompleted}
		confirmed, err := controller.Issue(ctx, intent.TaskCode, func(reqCtx context.Context) (model.DailyLog, error) {
			return backend.ToggleTask(reqCtx, req)
		}, func(confirmed model.DailyLog) {
			store.ApplyConfirmed(confirmed)
			intents.Clear(intent.TaskCode, intent.Seq)
		})
		if errors.Is(err, challenge.ErrSuperseded) {
			return ToggleSettledMsg{Task: intent.TaskCode, Superseded: true}
		}
		if err == nil {
			mirrorDay(cache, confirmed, logger)
		}
		return ToggleSettledMsg{Task: intent.TaskCode, Err: err}
	}
}

func mirrorDay(cache storage.Repository, confirmed model.DailyLog, logger *log.Logger) {
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.SaveDay(ctx, confirmed); err != nil {
		logger.WithError(err).Warn("cache day write failed")
	}
}

// saveDetailsCmd writes value/note for a task through the same per-task
// supersession path as the quick toggle, carrying the currently projected
// completed flag along.
func (m Model) saveDetailsCmd(task string, completed bool, value, note *string) tea.Cmd {
	controller := m.controller
	backend := m.backend
	store := m.store
	cache := m.cache
	logger := m.logger
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		req := api.ToggleRequest{Task: task, Completed: completed, Value: value, Note: note}
		confirmed, err := controller.Issue(ctx, task, func(reqCtx context.Context) (model.DailyLog, error) {
			return backend.ToggleTask(reqCtx, req)
		}, store.ApplyConfirmed)
		if errors.Is(err, challenge.ErrSuperseded) {
			return DetailsSavedMsg{Task: task, Superseded: true}
		}
		if err == nil {
			mirrorDay(cache, confirmed, logger)
		}
		return DetailsSavedMsg{Task: task, Err: err}
	}
}

func waitForReminderCmd(ch <-chan reminder.Reminder) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}
