package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseInOutCubicEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(0))
	assert.Equal(t, 1.0, EaseInOutCubic(1))
}

func TestEaseInOutCubicMonotonic(t *testing.T) {
	prev := EaseInOutCubic(0)
	for i := 1; i <= 1000; i++ {
		v := EaseInOutCubic(float64(i) / 1000)
		assert.GreaterOrEqual(t, v, prev, "ease must be non-decreasing at step %d", i)
		prev = v
	}
}

func TestEaseInOutCubicClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(-0.5))
	assert.Equal(t, 1.0, EaseInOutCubic(1.5))
}

func TestEaseInOutCubicMidpoint(t *testing.T) {
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)
}
