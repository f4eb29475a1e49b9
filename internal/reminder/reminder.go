package reminder

import (
	"sync"
	"time"

	"github.com/avashisht/grind/internal/model"
)

type Permission string

const (
	PermissionUnrequested Permission = "Unrequested"
	PermissionGranted     Permission = "Granted"
	PermissionDenied      Permission = "Denied"
)

// DefaultHours are the hour slots a reminder may fire in.
var DefaultHours = []int{10, 14, 20}

// PermissionSource is the runtime capability that owns notification consent.
// Permission is never requested implicitly; the user triggers it.
type PermissionSource interface {
	CurrentPermission() Permission
	RequestPermission() (Permission, error)
}

// ConsentSource backs PermissionSource with an explicit allow flag (set from
// config or the notify palette command). It stays Unrequested until the user
// asks, then lands on Granted or Denied.
type ConsentSource struct {
	mu    sync.Mutex
	state Permission
	allow bool
}

func NewConsentSource(allow bool) *ConsentSource {
	return &ConsentSource{state: PermissionUnrequested, allow: allow}
}

func (c *ConsentSource) SetAllow(allow bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allow = allow
}

func (c *ConsentSource) CurrentPermission() Permission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ConsentSource) RequestPermission() (Permission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.allow {
		c.state = PermissionGranted
	} else {
		c.state = PermissionDenied
	}
	return c.state, nil
}

// Slot identifies one reminder window: a calendar date plus an hour. The
// zero value means "never notified".
type Slot struct {
	Date string
	Hour int
}

func (s Slot) IsZero() bool {
	return s.Date == "" && s.Hour == 0
}

func slotFor(now time.Time) Slot {
	return Slot{Date: now.Format(model.DateLayout), Hour: now.Hour()}
}

type Decision struct {
	Fire      bool
	Slot      Slot
	Remaining int
}

// Decide is the pure reminder decision for one tick. A reminder fires when
// permission is granted, the day is not fully completed, the current hour is
// in the configured set, and this (date, hour) slot has not fired yet.
//
// Minute gating is deliberately relaxed from "exactly minute zero" to "first
// qualifying tick within the hour": the slot dedupe already guarantees at
// most one reminder per hour, and an exact-minute check silently skips the
// slot whenever a tick is missed across minute zero.
func Decide(now time.Time, perm Permission, hours []int, last Slot, today model.DailyLog, hasToday bool) Decision {
	if perm != PermissionGranted {
		return Decision{}
	}
	if hasToday && today.IsFullyCompleted {
		return Decision{}
	}
	hour := now.Hour()
	inSet := false
	for _, h := range hours {
		if h == hour {
			inSet = true
			break
		}
	}
	if !inSet {
		return Decision{}
	}
	slot := slotFor(now)
	if slot == last {
		return Decision{}
	}
	remaining := model.CatalogSize()
	if hasToday {
		remaining = today.IncompleteCount()
	}
	return Decision{Fire: true, Slot: slot, Remaining: remaining}
}

// Scheduler owns the mutable reminder state: the consent source and the last
// notified slot. The firing decision itself stays in Decide.
type Scheduler struct {
	mu     sync.Mutex
	source PermissionSource
	hours  []int
	last   Slot
}

func NewScheduler(source PermissionSource, hours []int) *Scheduler {
	if len(hours) == 0 {
		hours = DefaultHours
	}
	return &Scheduler{source: source, hours: hours}
}

// RestoreSlot seeds the dedupe state, e.g. from the local cache after a
// restart, so the same hour slot does not fire twice.
func (s *Scheduler) RestoreSlot(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = slot
}

func (s *Scheduler) LastSlot() Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Tick evaluates one clock tick against the given day state and records the
// slot when a reminder fires.
func (s *Scheduler) Tick(now time.Time, today model.DailyLog, hasToday bool) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	decision := Decide(now, s.source.CurrentPermission(), s.hours, s.last, today, hasToday)
	if decision.Fire {
		s.last = decision.Slot
	}
	return decision
}
