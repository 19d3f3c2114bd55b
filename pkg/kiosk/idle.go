package kiosk

import (
	"context"
	"sync"
	"time"
)

// ActivityState is the two-state attract machine: Active on any input,
// Idle once the timeout elapses without one.
type ActivityState string

const (
	StateActive ActivityState = "ACTIVE"
	StateIdle   ActivityState = "IDLE"
)

// Monitor keeps the monotonic last-interaction timestamp and decides when
// the kiosk falls back to the attract loop.
type Monitor struct {
	mu      sync.Mutex
	nowFn   func() time.Time
	timeout time.Duration
	last    time.Time
	state   ActivityState

	onIdle func()
	onWake func()
}

func NewMonitor(timeout time.Duration) *Monitor {
	m := &Monitor{
		nowFn:   time.Now,
		timeout: timeout,
		state:   StateActive,
	}
	m.last = m.nowFn()
	return m
}

// SetCallbacks registers the idle/wake hooks. onIdle fires on the
// Active→Idle edge (return-to-overview), onWake on Idle→Active.
func (m *Monitor) SetCallbacks(onIdle, onWake func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onIdle = onIdle
	m.onWake = onWake
}

// Touch records an interaction. Any input while idle wakes the kiosk
// immediately.
func (m *Monitor) Touch() {
	m.mu.Lock()
	m.last = m.nowFn()
	woke := m.state == StateIdle
	if woke {
		m.state = StateActive
	}
	onWake := m.onWake
	m.mu.Unlock()

	if woke && onWake != nil {
		onWake()
	}
}

// Check compares now against the last interaction and flips to Idle when
// the timeout is exceeded. Returns true on the Active→Idle edge.
func (m *Monitor) Check() bool {
	m.mu.Lock()
	if m.state != StateActive || m.nowFn().Sub(m.last) <= m.timeout {
		m.mu.Unlock()
		return false
	}
	m.state = StateIdle
	onIdle := m.onIdle
	m.mu.Unlock()

	if onIdle != nil {
		onIdle()
	}
	return true
}

// ForceIdle flips to Idle immediately, firing the edge callback as if the
// timeout had elapsed. No-op when already idle.
func (m *Monitor) ForceIdle() {
	m.mu.Lock()
	if m.state == StateIdle {
		m.mu.Unlock()
		return
	}
	m.state = StateIdle
	onIdle := m.onIdle
	m.mu.Unlock()

	if onIdle != nil {
		onIdle()
	}
}

// State returns the current activity state.
func (m *Monitor) State() ActivityState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Run performs the periodic check until the context is cancelled.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check()
		}
	}
}
