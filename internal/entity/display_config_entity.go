package entity

import (
	"time"

	"pumphouse-kiosk-be/pkg/camera"

	"github.com/google/uuid"
)

// DisplayConfig defines the target resolution (and therefore the aspect
// ratio every normalized coordinate is remapped against) plus the overview
// pose the camera returns to. Exactly one config is active at a time.
type DisplayConfig struct {
	Id           uuid.UUID
	Name         string
	TargetWidth  int
	TargetHeight int
	OverviewPose camera.Pose
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (c *DisplayConfig) AspectRatio() float64 {
	if c.TargetHeight <= 0 {
		return 1
	}
	return float64(c.TargetWidth) / float64(c.TargetHeight)
}
