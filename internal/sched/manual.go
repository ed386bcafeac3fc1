package sched

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit clock advancement, for
// deterministic tests. Due callbacks run synchronously inside Advance
// or Tick, in due-time order (FIFO for equal due times).
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualEntry
}

type manualEntry struct {
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManual creates a manual scheduler with the clock at zero
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc registers fn to fire once the clock has advanced by d
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	e := &manualEntry{due: m.now + d, seq: m.seq, fn: fn}
	m.seq++
	m.pending = append(m.pending, e)
	return &manualHandle{m: m, e: e}
}

// Advance moves the clock forward and fires every action that comes due
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
	m.fireDue()
}

// Tick fires all zero-delay actions scheduled so far without moving
// the clock, mimicking one pass of the host event loop
func (m *Manual) Tick() {
	m.fireDue()
}

// Pending returns the number of scheduled actions that have neither
// fired nor been cancelled
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.pending {
		if !e.stopped && !e.fired {
			n++
		}
	}
	return n
}

func (m *Manual) fireDue() {
	for {
		m.mu.Lock()
		var next *manualEntry
		for _, e := range m.pending {
			if e.stopped || e.fired || e.due > m.now {
				continue
			}
			if next == nil || e.due < next.due || (e.due == next.due && e.seq < next.seq) {
				next = e
			}
		}
		if next != nil {
			next.fired = true
		}
		m.mu.Unlock()

		if next == nil {
			m.compact()
			return
		}
		// Fire outside the lock: callbacks may schedule or cancel
		next.fn()
	}
}

func (m *Manual) compact() {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.pending[:0]
	for _, e := range m.pending {
		if !e.stopped && !e.fired {
			live = append(live, e)
		}
	}
	m.pending = live
	sort.SliceStable(m.pending, func(i, j int) bool {
		return m.pending[i].due < m.pending[j].due
	})
}

type manualHandle struct {
	m *Manual
	e *manualEntry
}

// Stop cancels the entry if it has not fired
func (h *manualHandle) Stop() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.e.stopped || h.e.fired {
		return false
	}
	h.e.stopped = true
	return true
}
