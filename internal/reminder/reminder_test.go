package reminder

import (
	"testing"
	"time"

	"github.com/avashisht/grind/internal/model"
)

func grantedSource(t *testing.T) *ConsentSource {
	t.Helper()
	source := NewConsentSource(true)
	if _, err := source.RequestPermission(); err != nil {
		t.Fatalf("request permission: %v", err)
	}
	return source
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestConsentSourceTransitions(t *testing.T) {
	source := NewConsentSource(true)
	if got := source.CurrentPermission(); got != PermissionUnrequested {
		t.Fatalf("expected Unrequested before any request, got %q", got)
	}
	if got, _ := source.RequestPermission(); got != PermissionGranted {
		t.Fatalf("expected Granted, got %q", got)
	}

	denied := NewConsentSource(false)
	if got, _ := denied.RequestPermission(); got != PermissionDenied {
		t.Fatalf("expected Denied, got %q", got)
	}
}

func TestExactlyOneReminderPerHourSlot(t *testing.T) {
	sched := NewScheduler(grantedSource(t), []int{10, 14, 20})
	today := model.DailyLog{Date: "2026-08-29"}

	fired := 0
	// Minute-by-minute ticks through 14:00-14:05.
	for minute := 0; minute <= 5; minute++ {
		now := at(t, "2026-08-29 14:00").Add(time.Duration(minute) * time.Minute)
		if sched.Tick(now, today, true).Fire {
			fired++
			if minute != 0 {
				t.Fatalf("reminder should fire at the first qualifying tick, fired at minute %d", minute)
			}
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly one reminder in the window, got %d", fired)
	}
}

func TestReminderFiresOnFirstTickEvenMidHour(t *testing.T) {
	// Process resumed at 14:07: the relaxed minute gating still fires once.
	sched := NewScheduler(grantedSource(t), []int{14})
	decision := sched.Tick(at(t, "2026-08-29 14:07"), model.DailyLog{Date: "2026-08-29"}, true)
	if !decision.Fire {
		t.Fatal("expected reminder on first tick within the hour slot")
	}
	if sched.Tick(at(t, "2026-08-29 14:08"), model.DailyLog{Date: "2026-08-29"}, true).Fire {
		t.Fatal("slot must not fire twice")
	}
}

func TestSameHourNextDayFiresAgain(t *testing.T) {
	sched := NewScheduler(grantedSource(t), []int{20})
	if !sched.Tick(at(t, "2026-08-29 20:00"), model.DailyLog{Date: "2026-08-29"}, true).Fire {
		t.Fatal("expected first day's reminder")
	}
	if !sched.Tick(at(t, "2026-08-30 20:00"), model.DailyLog{Date: "2026-08-30"}, true).Fire {
		t.Fatal("same hour on the next day is a new slot")
	}
}

func TestNoReminderWithoutPermission(t *testing.T) {
	unrequested := NewScheduler(NewConsentSource(true), []int{14})
	if unrequested.Tick(at(t, "2026-08-29 14:00"), model.DailyLog{}, false).Fire {
		t.Fatal("must not fire while permission is unrequested")
	}

	denied := NewConsentSource(false)
	_, _ = denied.RequestPermission()
	sched := NewScheduler(denied, []int{14})
	if sched.Tick(at(t, "2026-08-29 14:00"), model.DailyLog{}, false).Fire {
		t.Fatal("must not fire when permission is denied")
	}
}

func TestFullCompletionSuppressesReminder(t *testing.T) {
	sched := NewScheduler(grantedSource(t), []int{14})
	done := model.DailyLog{Date: "2026-08-29", IsFullyCompleted: true}
	if sched.Tick(at(t, "2026-08-29 14:00"), done, true).Fire {
		t.Fatal("no reminder when the day is fully completed")
	}
}

func TestNoReminderOutsideConfiguredHours(t *testing.T) {
	sched := NewScheduler(grantedSource(t), []int{10, 14, 20})
	if sched.Tick(at(t, "2026-08-29 13:00"), model.DailyLog{Date: "2026-08-29"}, true).Fire {
		t.Fatal("13:00 is not a reminder hour")
	}
}

func TestRemainingCount(t *testing.T) {
	sched := NewScheduler(grantedSource(t), []int{14})
	today := model.DailyLog{
		Date: "2026-08-29",
		TaskLogs: []model.TaskLogEntry{
			{TaskCode: "pushups", Completed: true},
			{TaskCode: "reading", Completed: true},
		},
	}
	decision := sched.Tick(at(t, "2026-08-29 14:00"), today, true)
	if decision.Remaining != model.CatalogSize()-2 {
		t.Fatalf("expected %d remaining, got %d", model.CatalogSize()-2, decision.Remaining)
	}

	// No log yet means nothing is done.
	fresh := NewScheduler(grantedSource(t), []int{14})
	decision = fresh.Tick(at(t, "2026-08-29 14:00"), model.DailyLog{}, false)
	if decision.Remaining != model.CatalogSize() {
		t.Fatalf("expected all %d tasks remaining, got %d", model.CatalogSize(), decision.Remaining)
	}
}

func TestRestoreSlotPreventsRefireAfterRestart(t *testing.T) {
	sched := NewScheduler(grantedSource(t), []int{14})
	sched.RestoreSlot(Slot{Date: "2026-08-29", Hour: 14})
	if sched.Tick(at(t, "2026-08-29 14:30"), model.DailyLog{Date: "2026-08-29"}, true).Fire {
		t.Fatal("restored slot must suppress the same hour")
	}
}

func TestEngineEmitsDueReminder(t *testing.T) {
	sched := NewScheduler(grantedSource(t), allHours())
	engine := NewEngine(sched, func() (model.DailyLog, bool) {
		return model.DailyLog{Date: time.Now().Format(model.DateLayout)}, true
	}, 10*time.Millisecond, 4)
	engine.Start()
	defer engine.Stop()

	select {
	case rem := <-engine.C():
		if rem.Remaining != model.CatalogSize() {
			t.Fatalf("unexpected remaining count: %d", rem.Remaining)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reminder")
	}
}

func TestEngineStopIsIdempotent(t *testing.T) {
	sched := NewScheduler(NewConsentSource(false), nil)
	engine := NewEngine(sched, func() (model.DailyLog, bool) { return model.DailyLog{}, false }, 10*time.Millisecond, 1)
	engine.Start()
	engine.Stop()
	engine.Stop()
}

func allHours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}
