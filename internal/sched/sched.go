// Package sched provides deferred, cancellable actions for the
// selection controller's blur and outside-click timing rules.
package sched

import (
	"sync"
	"time"
)

// Handle is a cancellable deferred action. Stop is idempotent and
// reports whether the call prevented the action from running.
type Handle interface {
	Stop() bool
}

// Scheduler schedules a function to run after a delay. A zero delay
// still defers execution until after the current event dispatch.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Timer is the production Scheduler backed by the runtime timer heap
type Timer struct{}

// NewTimer creates a new timer-backed scheduler
func NewTimer() *Timer {
	return &Timer{}
}

// AfterFunc schedules fn to run after d
func (t *Timer) AfterFunc(d time.Duration, fn func()) Handle {
	return &timerHandle{t: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	mu      sync.Mutex
	t       *time.Timer
	stopped bool
}

// Stop cancels the pending action if it has not fired yet
func (h *timerHandle) Stop() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.stopped = true
	return h.t.Stop()
}
