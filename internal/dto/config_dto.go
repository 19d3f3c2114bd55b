package dto

import (
	"time"

	"pumphouse-kiosk-be/pkg/camera"

	"github.com/google/uuid"
)

type CreateDisplayConfigRequest struct {
	Name         string      `json:"name" validate:"required"`
	TargetWidth  int         `json:"target_width" validate:"required,gt=0"`
	TargetHeight int         `json:"target_height" validate:"required,gt=0"`
	OverviewPose camera.Pose `json:"overview_pose"`
}

// UpdateDisplayConfigRequest is a partial patch: nil fields keep their
// stored value.
type UpdateDisplayConfigRequest struct {
	Id           uuid.UUID
	Name         *string      `json:"name,omitempty"`
	TargetWidth  *int         `json:"target_width,omitempty" validate:"omitempty,gt=0"`
	TargetHeight *int         `json:"target_height,omitempty" validate:"omitempty,gt=0"`
	OverviewPose *camera.Pose `json:"overview_pose,omitempty"`
}

type DisplayConfigResponse struct {
	Id           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	TargetWidth  int         `json:"target_width"`
	TargetHeight int         `json:"target_height"`
	AspectRatio  float64     `json:"aspect_ratio"`
	OverviewPose camera.Pose `json:"overview_pose"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    *time.Time  `json:"updated_at"`
}

type CreateDisplayConfigResponse struct {
	Id uuid.UUID `json:"id"`
}
