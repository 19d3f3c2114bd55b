package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonContains(t *testing.T) {
	pg := Polygon{Points: []Point{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}}}

	assert.True(t, pg.Contains(Point{X: 50, Y: 50}, 1))
	assert.False(t, pg.Contains(Point{X: 5, Y: 50}, 1))
	assert.False(t, pg.Contains(Point{X: 50, Y: 95}, 1))
}

func TestConcavePolygonContains(t *testing.T) {
	// A "U" shape: the notch in the middle is outside.
	pg := Polygon{Points: []Point{
		{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 60},
		{X: 60, Y: 60}, {X: 60, Y: 10}, {X: 80, Y: 10},
		{X: 80, Y: 90}, {X: 10, Y: 90},
	}}

	assert.True(t, pg.Contains(Point{X: 20, Y: 30}, 1))
	assert.False(t, pg.Contains(Point{X: 45, Y: 30}, 1))
	assert.True(t, pg.Contains(Point{X: 45, Y: 75}, 1))
}

func TestRectangleContains(t *testing.T) {
	r := Rectangle{X: 20, Y: 30, W: 40, H: 20}

	assert.True(t, r.Contains(Point{X: 40, Y: 40}, 1))
	assert.True(t, r.Contains(Point{X: 20, Y: 30}, 1))
	assert.False(t, r.Contains(Point{X: 61, Y: 40}, 1))
}

func TestCircleContainsCompensatesAspect(t *testing.T) {
	c := Circle{CX: 50, CY: 50, R: 10}
	aspect := 16.0 / 9.0

	// 15% to the right is only ~8.4 compensated units: inside on 16:9,
	// outside on a square display.
	p := Point{X: 65, Y: 50}
	assert.True(t, c.Contains(p, aspect))
	assert.False(t, c.Contains(p, 1))

	// Vertical offsets are unaffected by the aspect ratio.
	assert.False(t, c.Contains(Point{X: 50, Y: 65}, aspect))
	assert.True(t, c.Contains(Point{X: 50, Y: 59}, aspect))
}

func TestShapeRoundTrip(t *testing.T) {
	shapes := []Shape{
		Polygon{Points: []Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}},
		Rectangle{X: 1, Y: 2, W: 3, H: 4},
		Circle{CX: 5, CY: 6, R: 7},
	}
	for _, s := range shapes {
		raw, err := EncodeShape(s)
		require.NoError(t, err)
		decoded, err := DecodeShape(s.Kind(), raw)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
	}
}

func TestDecodeShapeRejectsDegeneratePolygon(t *testing.T) {
	_, err := DecodeShape(KindPolygon, []byte(`{"points":[{"x":1,"y":2}]}`))
	assert.ErrorIs(t, err, ErrTooFewVertices)
}

func TestDecodeShapeRejectsUnknownKind(t *testing.T) {
	_, err := DecodeShape(Kind("blob"), []byte(`{}`))
	assert.Error(t, err)
}
