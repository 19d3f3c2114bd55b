package geometry

import "math"

// Distance measures between two points in aspect-ratio-compensated space.
// Raw percentage distance would make thresholds behave differently on wide
// screens, so the horizontal delta is divided by the aspect ratio
// (targetWidth/targetHeight) before comparing. All proximity checks (closing
// gesture, vertex grabbing, midpoint placement) go through this.
func Distance(a, b Point, aspect float64) float64 {
	if aspect <= 0 {
		aspect = 1
	}
	dx := (a.X - b.X) / aspect
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}

// Midpoint is the arithmetic mean of two points.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
