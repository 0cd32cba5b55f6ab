package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownLifecycle(t *testing.T) {
	c := newCountdown(3)
	assert.Equal(t, TimerIdle, c.state)
	assert.Equal(t, 3, c.remaining)

	// Ticks before start are no-ops.
	assert.False(t, c.tick())
	assert.Equal(t, 3, c.remaining)

	require.NoError(t, c.start())
	assert.Equal(t, TimerRunning, c.state)
	assert.ErrorIs(t, c.start(), ErrAlreadyStarted)

	assert.False(t, c.tick())
	assert.Equal(t, 2, c.remaining)
	assert.False(t, c.tick())
	assert.Equal(t, 1, c.remaining)
}

func TestCountdownExpiresExactlyOnce(t *testing.T) {
	c := newCountdown(2)
	require.NoError(t, c.start())

	assert.False(t, c.tick())
	assert.True(t, c.tick(), "the tick reaching zero reports expiry")
	assert.Equal(t, TimerExpired, c.state)
	assert.Equal(t, 0, c.remaining)

	// Further ticks never re-report expiry or go negative.
	assert.False(t, c.tick())
	assert.False(t, c.tick())
	assert.Equal(t, 0, c.remaining)
}

func TestCountdownStop(t *testing.T) {
	c := newCountdown(10)
	require.NoError(t, c.start())
	c.stop()
	assert.Equal(t, TimerStopped, c.state)

	// Stopped clocks do not tick.
	assert.False(t, c.tick())
	assert.Equal(t, 10, c.remaining)

	// stop only applies to a Running clock.
	e := newCountdown(1)
	require.NoError(t, e.start())
	e.tick()
	e.stop()
	assert.Equal(t, TimerExpired, e.state)
}

func TestCountdownPresentationThresholds(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		warning bool
		danger  bool
	}{
		{"above both", 11 * 60, false, false},
		{"warning boundary", 10 * 60, true, false},
		{"between", 7 * 60, true, false},
		{"danger boundary", 5 * 60, true, true},
		{"under danger", 30, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCountdown(tt.seconds)
			assert.Equal(t, tt.warning, c.warning())
			assert.Equal(t, tt.danger, c.danger())
		})
	}
}
