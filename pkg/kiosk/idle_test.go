package kiosk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testMonitor(timeout time.Duration) (*Monitor, *time.Time) {
	now := time.Unix(5000, 0)
	m := NewMonitor(timeout)
	m.nowFn = func() time.Time { return now }
	m.last = now
	return m, &now
}

func TestMonitorGoesIdleAfterTimeout(t *testing.T) {
	m, now := testMonitor(time.Minute)
	var idleFired int
	m.SetCallbacks(func() { idleFired++ }, nil)

	*now = now.Add(time.Minute)
	assert.False(t, m.Check(), "exactly at the timeout is not yet idle")
	assert.Equal(t, StateActive, m.State())

	*now = now.Add(time.Second)
	assert.True(t, m.Check())
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 1, idleFired)

	// Already idle: the edge does not re-fire.
	assert.False(t, m.Check())
	assert.Equal(t, 1, idleFired)
}

func TestTouchWakesImmediately(t *testing.T) {
	m, now := testMonitor(time.Minute)
	var wokeFired int
	m.SetCallbacks(nil, func() { wokeFired++ })

	*now = now.Add(2 * time.Minute)
	m.Check()
	assert.Equal(t, StateIdle, m.State())

	m.Touch()
	assert.Equal(t, StateActive, m.State())
	assert.Equal(t, 1, wokeFired)

	// The touch reset the clock: the next check stays active.
	assert.False(t, m.Check())
}

func TestForceIdleSkipsTimeout(t *testing.T) {
	m, now := testMonitor(time.Minute)
	var idleFired int
	m.SetCallbacks(func() { idleFired++ }, nil)

	m.ForceIdle()
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 1, idleFired)

	// Already idle: forcing again and the timeout check are both no-ops.
	m.ForceIdle()
	*now = now.Add(2 * time.Minute)
	assert.False(t, m.Check())
	assert.Equal(t, 1, idleFired)
}

func TestTouchWhileActiveResetsTimer(t *testing.T) {
	m, now := testMonitor(time.Minute)

	*now = now.Add(50 * time.Second)
	m.Touch()
	*now = now.Add(50 * time.Second)
	assert.False(t, m.Check())
	assert.Equal(t, StateActive, m.State())
}
