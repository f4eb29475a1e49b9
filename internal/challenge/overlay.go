package challenge

import (
	"sync"
	"time"

	"github.com/avashisht/grind/internal/model"
)

// PendingIntent records what the user last asked for on one task, before the
// server has confirmed it. Seq is a logical clock: a newer toggle for the
// same task always carries a higher Seq and replaces the older intent.
type PendingIntent struct {
	TaskCode         string
	DesiredCompleted bool
	Seq              uint64
	IssuedAt         time.Time
}

// Intents holds at most one live PendingIntent per task code.
type Intents struct {
	mu     sync.Mutex
	seq    uint64
	byTask map[string]PendingIntent
}

func NewIntents() *Intents {
	return &Intents{byTask: make(map[string]PendingIntent)}
}

// Set records the user's latest intent for a task, replacing any previous
// one, and returns the stored intent with its assigned sequence number.
func (in *Intents) Set(taskCode string, desired bool, now time.Time) PendingIntent {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.seq++
	intent := PendingIntent{
		TaskCode:         taskCode,
		DesiredCompleted: desired,
		Seq:              in.seq,
		IssuedAt:         now,
	}
	in.byTask[taskCode] = intent
	return intent
}

// Clear discards the intent for a task, but only if it is still the one
// identified by seq. A settlement from an older request must not wipe the
// overlay a newer toggle just installed.
func (in *Intents) Clear(taskCode string, seq uint64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if current, ok := in.byTask[taskCode]; ok && current.Seq == seq {
		delete(in.byTask, taskCode)
	}
}

func (in *Intents) Get(taskCode string) (PendingIntent, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	intent, ok := in.byTask[taskCode]
	return intent, ok
}

func (in *Intents) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.byTask)
}

// View copies the live intent set for projection.
func (in *Intents) View() map[string]PendingIntent {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make(map[string]PendingIntent, len(in.byTask))
	for code, intent := range in.byTask {
		out[code] = intent
	}
	return out
}

// Project layers pending intents over the confirmed log and returns the state
// the UI should render. Only the completed flag is overridden; value and note
// are edited through an explicit save, not the quick-toggle path, so they
// stay as confirmed. Entry order and untouched fields are preserved verbatim.
// A pending intent for a task the confirmed log has no entry for yet (first
// toggle of the day) gets a synthesized entry appended in catalog order, so
// the checkbox still reflects the user's action. Pure: inputs are never
// mutated and the function is safe to rerun on every render.
func Project(confirmed model.DailyLog, pending map[string]PendingIntent) model.DailyLog {
	projected := confirmed.Clone()
	covered := make(map[string]bool, len(projected.TaskLogs))
	for i := range projected.TaskLogs {
		covered[projected.TaskLogs[i].TaskCode] = true
		if intent, ok := pending[projected.TaskLogs[i].TaskCode]; ok {
			projected.TaskLogs[i].Completed = intent.DesiredCompleted
		}
	}
	for _, def := range model.Catalog() {
		if covered[def.Code] {
			continue
		}
		if intent, ok := pending[def.Code]; ok {
			projected.TaskLogs = append(projected.TaskLogs, model.TaskLogEntry{
				TaskCode:  def.Code,
				Completed: intent.DesiredCompleted,
			})
		}
	}
	return projected
}
