package challenge

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/avashisht/grind/internal/model"
)

// ErrSuperseded marks a request whose result arrived too late to matter: a
// newer toggle for the same task replaced it. It is an internal outcome, not
// a user-facing error, and callers must not surface it.
var ErrSuperseded = errors.New("challenge: request superseded by a newer one")

// MutationFunc performs one remote mutation. It must stop (or at least allow
// its result to be ignored) when ctx is cancelled.
type MutationFunc func(ctx context.Context) (model.DailyLog, error)

type requestHandle struct {
	id     string
	cancel context.CancelCauseFunc
}

// Controller keeps at most one live mutation per task code. Issuing a new
// request cancels the previous handle for that task; whichever request was
// issued last is the only one whose settlement may touch shared state, even
// when network round-trips complete out of order.
type Controller struct {
	mu     sync.Mutex
	active map[string]*requestHandle
}

func NewController() *Controller {
	return &Controller{active: make(map[string]*requestHandle)}
}

// Issue runs fn for taskCode, superseding any in-flight request for the same
// task. On a live settlement the confirmed log is passed to onConfirmed
// before the handle is released; the active-check and the apply happen inside
// one critical section, so a concurrent supersession can never interleave
// between them. Superseded settlements — successes and failures alike — are
// discarded and reported as ErrSuperseded.
//
// Requests for different task codes never affect each other.
func (c *Controller) Issue(ctx context.Context, taskCode string, fn MutationFunc, onConfirmed func(model.DailyLog)) (model.DailyLog, error) {
	reqCtx, cancel := context.WithCancelCause(ctx)
	handle := &requestHandle{id: uuid.NewString(), cancel: cancel}

	c.mu.Lock()
	if prev, ok := c.active[taskCode]; ok {
		prev.cancel(ErrSuperseded)
	}
	c.active[taskCode] = handle
	c.mu.Unlock()

	confirmed, err := fn(reqCtx)

	c.mu.Lock()
	live := c.active[taskCode] == handle
	if live {
		delete(c.active, taskCode)
		if err == nil && onConfirmed != nil {
			onConfirmed(confirmed)
		}
	}
	c.mu.Unlock()
	cancel(nil)

	if !live {
		return model.DailyLog{}, ErrSuperseded
	}
	return confirmed, err
}

// Active reports whether taskCode currently has a live request.
func (c *Controller) Active(taskCode string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.active[taskCode]
	return ok
}

// InFlight reports how many task codes currently have a live request.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

// CancelAll aborts every outstanding request. Used on teardown so settling
// goroutines stop updating state nobody is observing anymore.
func (c *Controller) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for code, handle := range c.active {
		handle.cancel(context.Canceled)
		delete(c.active, code)
	}
}
