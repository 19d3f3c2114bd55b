package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Coordinates are percentages of the logical viewport, 0–100 on both axes,
// independent of the physical pixel resolution. The display aspect ratio
// (targetWidth/targetHeight) only enters at measurement time, see Distance.

var (
	// ErrTooFewVertices is returned when closing a polygon with fewer than
	// three placed vertices.
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

	// ErrMinVertices is returned when deleting a vertex would reduce a
	// polygon below three vertices.
	ErrMinVertices = errors.New("polygon may not be reduced below 3 vertices")

	// ErrIndexOutOfRange is returned for vertex/edge indices outside the
	// polygon.
	ErrIndexOutOfRange = errors.New("vertex index out of range")
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp keeps a point inside the logical viewport.
func (p Point) Clamp() Point {
	return Point{X: clamp(p.X, 0, 100), Y: clamp(p.Y, 0, 100)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Kind discriminates the shape variants as stored in the hotspot record.
type Kind string

const (
	KindPolygon   Kind = "polygon"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
)

// Shape is the tagged union over hotspot geometries. Each variant carries
// only its own fields; consumers switch exhaustively on the concrete type.
type Shape interface {
	Kind() Kind
	Contains(p Point, aspect float64) bool
}

// Polygon is an ordered ring of at least three vertices.
type Polygon struct {
	Points []Point `json:"points"`
}

func (Polygon) Kind() Kind { return KindPolygon }

// Rectangle is an axis-aligned box, origin at its top-left corner.
type Rectangle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (Rectangle) Kind() Kind { return KindRectangle }

// Circle has its radius expressed in vertical percent units; the horizontal
// extent is compensated by the aspect ratio at hit-test time.
type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

func (Circle) Kind() Kind { return KindCircle }

// EncodeShape serializes a shape's geometry fields; the kind travels
// separately (a column in the hotspot record).
func EncodeShape(s Shape) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeShape rebuilds the concrete variant from a kind discriminator and
// raw geometry JSON.
func DecodeShape(kind Kind, raw []byte) (Shape, error) {
	switch kind {
	case KindPolygon:
		var pg Polygon
		if err := json.Unmarshal(raw, &pg); err != nil {
			return nil, err
		}
		if len(pg.Points) < 3 {
			return nil, ErrTooFewVertices
		}
		return pg, nil
	case KindRectangle:
		var r Rectangle
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return r, nil
	case KindCircle:
		var c Circle
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", kind)
	}
}
