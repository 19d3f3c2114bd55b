package dto

import (
	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/google/uuid"
)

type OpenDraftRequest struct {
	// HotspotId reopens an existing polygon hotspot for redrawing; empty
	// starts a fresh outline.
	HotspotId *uuid.UUID `json:"hotspot_id,omitempty"`
}

type DraftResponse struct {
	Id        uuid.UUID        `json:"id"`
	HotspotId *uuid.UUID       `json:"hotspot_id,omitempty"`
	Points    []geometry.Point `json:"points"`
}

type AddVertexRequest struct {
	Id uuid.UUID
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type AddVertexResponse struct {
	// Closed is true when the point landed on the first vertex and the
	// ring closed instead of growing.
	Closed bool             `json:"closed"`
	Points []geometry.Point `json:"points"`
}

type CloseDraftRequest struct {
	Id           uuid.UUID
	Slug         string            `json:"slug"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions"`
}

type VertexOpRequest struct {
	HotspotId uuid.UUID
	Index     int
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type VertexOpResponse struct {
	Points []geometry.Point `json:"points"`
}
