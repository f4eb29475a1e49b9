package reminder

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/avashisht/grind/internal/model"
)

// Reminder is one fired notification, delivered on the engine's channel.
type Reminder struct {
	At        time.Time
	Slot      Slot
	Remaining int
}

// SnapshotFunc supplies the current day state at each tick.
type SnapshotFunc func() (model.DailyLog, bool)

// Engine polls the scheduler on a fixed interval and emits fired reminders on
// its channel. Sends never block; a slow consumer drops reminders rather than
// stalling the loop.
type Engine struct {
	mu        sync.Mutex
	scheduler *Scheduler
	snapshot  SnapshotFunc
	interval  time.Duration
	out       chan Reminder
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool
	stopped   bool
	dropped   uint64
}

func NewEngine(scheduler *Scheduler, snapshot SnapshotFunc, interval time.Duration, bufferSize int) *Engine {
	if interval <= 0 {
		interval = time.Minute
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		scheduler: scheduler,
		snapshot:  snapshot,
		interval:  interval,
		out:       make(chan Reminder, bufferSize),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Reminder {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			today, hasToday := e.snapshot()
			decision := e.scheduler.Tick(now, today, hasToday)
			if !decision.Fire {
				continue
			}
			select {
			case e.out <- Reminder{At: now, Slot: decision.Slot, Remaining: decision.Remaining}:
			default:
				atomic.AddUint64(&e.dropped, 1)
			}
		case <-e.stopCh:
			return
		}
	}
}
