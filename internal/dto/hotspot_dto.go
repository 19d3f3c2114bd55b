package dto

import (
	"encoding/json"
	"time"

	"pumphouse-kiosk-be/pkg/camera"

	"github.com/google/uuid"
)

type CreateHotspotRequest struct {
	Slug         string            `json:"slug" validate:"required"`
	Shape        string            `json:"shape" validate:"required,oneof=polygon rectangle circle"`
	Bounds       json.RawMessage   `json:"bounds" validate:"required"`
	Viewpoint    *camera.Pose      `json:"viewpoint,omitempty"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions"`
	Active       *bool             `json:"active,omitempty"`
	SortOrder    int               `json:"sort_order"`
}

// UpdateHotspotRequest is a partial patch; bounds and shape travel together
// when the geometry changes.
type UpdateHotspotRequest struct {
	Id           uuid.UUID
	Slug         *string           `json:"slug,omitempty"`
	Shape        *string           `json:"shape,omitempty" validate:"omitempty,oneof=polygon rectangle circle"`
	Bounds       json.RawMessage   `json:"bounds,omitempty"`
	Names        map[string]string `json:"names,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	Active       *bool             `json:"active,omitempty"`
	SortOrder    *int              `json:"sort_order,omitempty"`
}

type SetViewpointRequest struct {
	Id   uuid.UUID
	Pose camera.Pose `json:"pose"`
}

type HotspotResponse struct {
	Id           uuid.UUID         `json:"id"`
	Slug         string            `json:"slug"`
	Shape        string            `json:"shape"`
	Bounds       json.RawMessage   `json:"bounds"`
	Viewpoint    *camera.Pose      `json:"viewpoint,omitempty"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions"`
	Active       bool              `json:"active"`
	SortOrder    int               `json:"sort_order"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    *time.Time        `json:"updated_at"`
}

// HotspotListItem is the visitor-facing projection: one language, no raw
// geometry internals beyond what the overlay needs.
type HotspotListItem struct {
	Id           uuid.UUID       `json:"id"`
	Slug         string          `json:"slug"`
	Shape        string          `json:"shape"`
	Bounds       json.RawMessage `json:"bounds"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	HasViewpoint bool            `json:"has_viewpoint"`
}

type CreateHotspotResponse struct {
	Id uuid.UUID `json:"id"`
}
