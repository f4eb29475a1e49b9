package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/reminder"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveDay(ctx context.Context, log model.DailyLog) error {
	if strings.TrimSpace(log.Date) == "" {
		return errors.New("storage: daily log date is required")
	}
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode daily log: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daily_logs (date, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		log.Date, string(payload), time.Now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (r *SQLiteRepository) GetDay(ctx context.Context, date string) (model.DailyLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload FROM daily_logs WHERE date = ?`, date)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DailyLog{}, ErrNotFound
		}
		return model.DailyLog{}, err
	}
	var out model.DailyLog
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return model.DailyLog{}, fmt.Errorf("decode daily log: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) SaveSummary(ctx context.Context, summary model.ProgressSummary, fetchedAt time.Time) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO progress_cache (id, payload, fetched_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		string(payload), fetchedAt.UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (r *SQLiteRepository) GetSummary(ctx context.Context) (model.ProgressSummary, time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload, fetched_at FROM progress_cache WHERE id = 1`)
	var payload, fetchedRaw string
	if err := row.Scan(&payload, &fetchedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProgressSummary{}, time.Time{}, ErrNotFound
		}
		return model.ProgressSummary{}, time.Time{}, err
	}
	var out model.ProgressSummary
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return model.ProgressSummary{}, time.Time{}, fmt.Errorf("decode summary: %w", err)
	}
	fetchedAt, err := time.Parse(sqliteTimeLayout, fetchedRaw)
	if err != nil {
		return model.ProgressSummary{}, time.Time{}, fmt.Errorf("parse fetched_at: %w", err)
	}
	return out, fetchedAt, nil
}

func (r *SQLiteRepository) SaveReminderSlot(ctx context.Context, slot reminder.Slot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminder_state (id, slot_date, slot_hour)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET slot_date = excluded.slot_date, slot_hour = excluded.slot_hour`,
		slot.Date, slot.Hour,
	)
	return err
}

func (r *SQLiteRepository) GetReminderSlot(ctx context.Context) (reminder.Slot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT slot_date, slot_hour FROM reminder_state WHERE id = 1`)
	var slot reminder.Slot
	if err := row.Scan(&slot.Date, &slot.Hour); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reminder.Slot{}, ErrNotFound
		}
		return reminder.Slot{}, err
	}
	return slot, nil
}
