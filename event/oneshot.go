package event

import (
	"errors"
	"sync"
)

// State is the lifecycle state of a OneShot.
type State int

const (
	Pending State = iota // subscribers are queued
	Fired                // subscribers run on subscribe
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fired:
		return "fired"
	default:
		return "unknown"
	}
}

// Subscriber is called once when the event fires.
type Subscriber func() error

// OneShot is a broadcast that fires at most once until Reset.
type OneShot struct {
	state State
	queue []Subscriber
	mu    sync.Mutex
}

// New creates a pending OneShot.
func New() *OneShot {
	return &OneShot{queue: make([]Subscriber, 0)}
}

// Subscribe queues fn until Fire. If the event has already fired, fn runs
// synchronously and its error is returned.
func (e *OneShot) Subscribe(fn Subscriber) error {
	if fn == nil {
		return nil
	}

	e.mu.Lock()
	if e.state == Pending {
		e.queue = append(e.queue, fn)
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	return fn()
}

// Fire transitions to Fired and invokes every queued subscriber in
// subscription order. All subscribers run; their errors are joined.
// Firing an already fired event is a no-op.
func (e *OneShot) Fire() error {
	e.mu.Lock()
	if e.state == Fired {
		e.mu.Unlock()
		return nil
	}
	e.state = Fired
	queue := e.queue
	e.queue = make([]Subscriber, 0)
	e.mu.Unlock()

	var errs []error
	for _, fn := range queue {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Fired reports whether the event has fired.
func (e *OneShot) Fired() bool {
	return e.State() == Fired
}

// State returns the current state.
func (e *OneShot) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Pending returns the number of queued subscribers.
func (e *OneShot) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Reset re-arms a fired event. Subscribers queued on a pending event stay
// queued for the next Fire.
func (e *OneShot) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Pending
}
