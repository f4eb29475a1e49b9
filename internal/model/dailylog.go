package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrDuplicateTaskLog = errors.New("model: duplicate task log entry")

// TaskLogEntry is one task's record within a single day's log.
type TaskLogEntry struct {
	TaskCode  string `json:"task"`
	Value     string `json:"value"`
	Note      string `json:"note"`
	Completed bool   `json:"completed"`
}

// DailyLog is the server-owned record of one user's day. Clients never build
// one from scratch; they receive it from the backend and treat it as
// authoritative.
type DailyLog struct {
	UserID           string         `json:"userId"`
	Date             string         `json:"date"`
	TaskLogs         []TaskLogEntry `json:"taskLogs"`
	IsFullyCompleted bool           `json:"isFullyCompleted"`
}

func (d DailyLog) Validate() error {
	if strings.TrimSpace(d.Date) == "" {
		return errors.New("model: daily log date is required")
	}
	if _, err := time.Parse(DateLayout, dateOnly(d.Date)); err != nil {
		return fmt.Errorf("model: invalid daily log date %q: %w", d.Date, err)
	}
	seen := make(map[string]bool, len(d.TaskLogs))
	for _, entry := range d.TaskLogs {
		if !KnownTask(entry.TaskCode) {
			return fmt.Errorf("%w: %q", ErrUnknownTask, entry.TaskCode)
		}
		if seen[entry.TaskCode] {
			return fmt.Errorf("%w: %q", ErrDuplicateTaskLog, entry.TaskCode)
		}
		seen[entry.TaskCode] = true
	}
	return nil
}

// Entry returns the log entry for the given task code, if present.
func (d DailyLog) Entry(code string) (TaskLogEntry, bool) {
	for _, entry := range d.TaskLogs {
		if entry.TaskCode == code {
			return entry, true
		}
	}
	return TaskLogEntry{}, false
}

// IncompleteCount counts catalog tasks that have no completed entry yet.
func (d DailyLog) IncompleteCount() int {
	remaining := 0
	for _, def := range catalog {
		entry, ok := d.Entry(def.Code)
		if !ok || !entry.Completed {
			remaining++
		}
	}
	return remaining
}

// Clone deep-copies the log so snapshots cannot alias store-held state.
func (d DailyLog) Clone() DailyLog {
	out := d
	if d.TaskLogs != nil {
		out.TaskLogs = make([]TaskLogEntry, len(d.TaskLogs))
		copy(out.TaskLogs, d.TaskLogs)
	}
	return out
}

// SameDate reports whether two date strings name the same calendar day.
// Backend payloads carry either a bare date or an RFC 3339 timestamp, so
// comparison truncates to the date part rather than matching verbatim.
func SameDate(a, b string) bool {
	return dateOnly(a) == dateOnly(b)
}

func dateOnly(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx := strings.IndexByte(trimmed, 'T'); idx > 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
