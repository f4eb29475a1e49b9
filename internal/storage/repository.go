package storage

import (
	"context"
	"errors"
	"time"

	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/reminder"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the local read-through cache. It exists so the dashboard
// renders the last-known state instantly (and offline); the backend stays the
// source of truth and every successful fetch overwrites what is cached here.
type Repository interface {
	SaveDay(ctx context.Context, log model.DailyLog) error
	GetDay(ctx context.Context, date string) (model.DailyLog, error)

	SaveSummary(ctx context.Context, summary model.ProgressSummary, fetchedAt time.Time) error
	GetSummary(ctx context.Context) (model.ProgressSummary, time.Time, error)

	SaveReminderSlot(ctx context.Context, slot reminder.Slot) error
	GetReminderSlot(ctx context.Context) (reminder.Slot, error)
}
