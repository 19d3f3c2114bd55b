package camera

import (
	"fmt"
	"math"
)

// Vec3 is a position in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Euler is a rotation in degrees.
type Euler struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Pose is an immutable camera snapshot. New poses replace old ones; a Pose is
// never mutated in place.
type Pose struct {
	Position Vec3     `json:"position"`
	Rotation Euler    `json:"rotation"`
	FOV      *float64 `json:"fov,omitempty"`
}

// Validate rejects poses with non-finite components. Malformed viewpoint data
// coming from the store must never reach the animator.
func (p Pose) Validate() error {
	components := []float64{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Rotation.Pitch, p.Rotation.Yaw, p.Rotation.Roll,
	}
	if p.FOV != nil {
		components = append(components, *p.FOV)
	}
	for _, c := range components {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("pose contains non-finite component %v", c)
		}
	}
	return nil
}

// Lerp interpolates each of the six scalar components independently.
// Rotation is per-axis linear interpolation in degrees, NOT shortest-angle or
// quaternion interpolation: a transition crossing the ±180° boundary spins the
// long way round. Known issue, kept on purpose to match the installed kiosks.
func Lerp(from, to Pose, t float64) Pose {
	out := Pose{
		Position: Vec3{
			X: lerp(from.Position.X, to.Position.X, t),
			Y: lerp(from.Position.Y, to.Position.Y, t),
			Z: lerp(from.Position.Z, to.Position.Z, t),
		},
		Rotation: Euler{
			Pitch: lerp(from.Rotation.Pitch, to.Rotation.Pitch, t),
			Yaw:   lerp(from.Rotation.Yaw, to.Rotation.Yaw, t),
			Roll:  lerp(from.Rotation.Roll, to.Rotation.Roll, t),
		},
	}
	if from.FOV != nil && to.FOV != nil {
		fov := lerp(*from.FOV, *to.FOV, t)
		out.FOV = &fov
	} else if to.FOV != nil {
		fov := *to.FOV
		out.FOV = &fov
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
