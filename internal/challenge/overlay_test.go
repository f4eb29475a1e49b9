package challenge

import (
	"testing"
	"time"

	"github.com/avashisht/grind/internal/model"
)

func TestLastIntentWinsPerTask(t *testing.T) {
	intents := NewIntents()
	now := time.Now().UTC()

	// Three rapid toggles on the same task before any response lands.
	intents.Set("pushups", true, now)
	intents.Set("pushups", false, now)
	last := intents.Set("pushups", true, now)

	confirmed := model.DailyLog{
		Date:     "2026-08-29",
		TaskLogs: []model.TaskLogEntry{{TaskCode: "pushups", Completed: false}},
	}
	projected := Project(confirmed, intents.View())
	entry, ok := projected.Entry("pushups")
	if !ok || !entry.Completed {
		t.Fatalf("projection must reflect the last toggle, got %+v", entry)
	}
	if intents.Len() != 1 {
		t.Fatalf("expected a single live intent, got %d", intents.Len())
	}
	if got, _ := intents.Get("pushups"); got.Seq != last.Seq {
		t.Fatalf("stored intent is not the newest: %+v", got)
	}
}

func TestClearOnlyRemovesMatchingSeq(t *testing.T) {
	intents := NewIntents()
	now := time.Now().UTC()
	old := intents.Set("reading", true, now)
	newer := intents.Set("reading", false, now)

	// A stale settlement must not clear the newer intent.
	intents.Clear("reading", old.Seq)
	if _, ok := intents.Get("reading"); !ok {
		t.Fatal("newer intent was cleared by a stale settlement")
	}

	intents.Clear("reading", newer.Seq)
	if _, ok := intents.Get("reading"); ok {
		t.Fatal("matching clear should remove the intent")
	}
}

func TestProjectOverridesOnlyCompleted(t *testing.T) {
	confirmed := model.DailyLog{
		Date: "2026-08-29",
		TaskLogs: []model.TaskLogEntry{
			{TaskCode: "pushups", Value: "80 reps", Note: "sore arms", Completed: false},
			{TaskCode: "reading", Value: "12 pages", Completed: true},
		},
	}
	pending := map[string]PendingIntent{
		"pushups": {TaskCode: "pushups", DesiredCompleted: true, Seq: 1},
	}

	projected := Project(confirmed, pending)
	pushups, _ := projected.Entry("pushups")
	if !pushups.Completed {
		t.Fatal("pending intent not applied")
	}
	if pushups.Value != "80 reps" || pushups.Note != "sore arms" {
		t.Fatalf("value/note must stay as confirmed: %+v", pushups)
	}
	reading, _ := projected.Entry("reading")
	if !reading.Completed || reading.Value != "12 pages" {
		t.Fatalf("entry without intent must pass through verbatim: %+v", reading)
	}
	if projected.TaskLogs[0].TaskCode != "pushups" || projected.TaskLogs[1].TaskCode != "reading" {
		t.Fatalf("entry order must be preserved: %+v", projected.TaskLogs)
	}
}

func TestProjectDoesNotMutateInputs(t *testing.T) {
	confirmed := model.DailyLog{
		Date:     "2026-08-29",
		TaskLogs: []model.TaskLogEntry{{TaskCode: "squats", Completed: false}},
	}
	pending := map[string]PendingIntent{
		"squats": {TaskCode: "squats", DesiredCompleted: true, Seq: 1},
	}
	_ = Project(confirmed, pending)
	if confirmed.TaskLogs[0].Completed {
		t.Fatal("Project mutated its confirmed input")
	}
}

func TestProjectSynthesizesEntryForFirstToggle(t *testing.T) {
	// First toggle of the day: the server has no log yet.
	confirmed := model.DailyLog{Date: "2026-08-29"}
	pending := map[string]PendingIntent{
		"meditation": {TaskCode: "meditation", DesiredCompleted: true, Seq: 1},
	}
	projected := Project(confirmed, pending)
	entry, ok := projected.Entry("meditation")
	if !ok || !entry.Completed {
		t.Fatalf("expected synthesized completed entry, got %+v ok=%v", entry, ok)
	}
	if len(projected.TaskLogs) != 1 {
		t.Fatalf("only tasks with intents should be synthesized, got %+v", projected.TaskLogs)
	}
}

func TestProjectWithNoPendingIsIdentity(t *testing.T) {
	confirmed := model.DailyLog{
		Date:             "2026-08-29",
		IsFullyCompleted: true,
		TaskLogs:         []model.TaskLogEntry{{TaskCode: "coding", Completed: true}},
	}
	projected := Project(confirmed, nil)
	if !projected.IsFullyCompleted || len(projected.TaskLogs) != 1 {
		t.Fatalf("projection without intents must equal confirmed state: %+v", projected)
	}
}
