package geometry

// Contains reports whether p lies inside the polygon, by even-odd ray
// casting. Containment is evaluated in raw percentage space; the polygon is
// drawn in the same stretched viewport it is tested against, so no aspect
// compensation applies here.
func (pg Polygon) Contains(p Point, _ float64) bool {
	n := len(pg.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg.Points[i], pg.Points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func (r Rectangle) Contains(p Point, _ float64) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Contains for circles compares compensated distance so the tappable region
// looks round on screen rather than round in percentage space.
func (c Circle) Contains(p Point, aspect float64) bool {
	return Distance(p, Point{X: c.CX, Y: c.CY}, aspect) <= c.R
}
