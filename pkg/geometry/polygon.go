package geometry

// Editing operations return new polygons; persisted geometry is never
// mutated in place so the optimistic local copy stays valid if a save fails.

// DragVertex replaces one vertex, clamping the new point to the viewport.
func (pg Polygon) DragVertex(i int, p Point) (Polygon, error) {
	if i < 0 || i >= len(pg.Points) {
		return pg, ErrIndexOutOfRange
	}
	points := append([]Point(nil), pg.Points...)
	points[i] = p.Clamp()
	return Polygon{Points: points}, nil
}

// InsertMidpoint inserts the arithmetic midpoint of edge (i, i+1 mod n)
// after vertex i.
func (pg Polygon) InsertMidpoint(i int) (Polygon, error) {
	n := len(pg.Points)
	if i < 0 || i >= n {
		return pg, ErrIndexOutOfRange
	}
	mid := Midpoint(pg.Points[i], pg.Points[(i+1)%n])
	points := make([]Point, 0, n+1)
	points = append(points, pg.Points[:i+1]...)
	points = append(points, mid)
	points = append(points, pg.Points[i+1:]...)
	return Polygon{Points: points}, nil
}

// DeleteVertex removes one vertex. A polygon must keep at least three
// vertices; deleting from a triangle returns ErrMinVertices and leaves the
// polygon untouched.
func (pg Polygon) DeleteVertex(i int) (Polygon, error) {
	n := len(pg.Points)
	if i < 0 || i >= n {
		return pg, ErrIndexOutOfRange
	}
	if n <= 3 {
		return pg, ErrMinVertices
	}
	points := make([]Point, 0, n-1)
	points = append(points, pg.Points[:i]...)
	points = append(points, pg.Points[i+1:]...)
	return Polygon{Points: points}, nil
}

// Draft is a polygon being authored. While drawing there is no lower bound
// on the vertex count; the bound is enforced when the draft is closed.
type Draft struct {
	Points []Point `json:"points"`

	// Aspect is the active display's targetWidth/targetHeight.
	Aspect float64 `json:"aspect"`

	// CloseThreshold is the compensated distance below which a new point
	// snaps to the first vertex and closes the ring.
	CloseThreshold float64 `json:"close_threshold"`
}

// AddVertex appends a point, or closes the draft when the point lands within
// the closing threshold of the first vertex. Returns true when the gesture
// closed the ring instead of adding.
func (d *Draft) AddVertex(p Point) bool {
	p = p.Clamp()
	if len(d.Points) >= 3 && Distance(p, d.Points[0], d.Aspect) <= d.CloseThreshold {
		return true
	}
	d.Points = append(d.Points, p)
	return false
}

// Close finalizes the draft into a polygon.
func (d *Draft) Close() (Polygon, error) {
	if len(d.Points) < 3 {
		return Polygon{}, ErrTooFewVertices
	}
	return Polygon{Points: append([]Point(nil), d.Points...)}, nil
}
