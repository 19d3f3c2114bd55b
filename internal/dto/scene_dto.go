package dto

import (
	"pumphouse-kiosk-be/pkg/camera"

	"github.com/google/uuid"
)

type TapRequest struct {
	X float64 `json:"x" validate:"min=0,max=100"`
	Y float64 `json:"y" validate:"min=0,max=100"`
}

type TapResponse struct {
	// Hit is nil when the tap landed on empty scenery.
	Hit *SelectedHotspot `json:"hit,omitempty"`
}

type SelectedHotspot struct {
	Id          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// Transitioning reports whether selecting it started a camera move.
	Transitioning bool `json:"transitioning"`
}

type SceneStateResponse struct {
	Transition camera.TransitionState `json:"transition"`
	Selected   *SelectedHotspot       `json:"selected,omitempty"`
	Activity   string                 `json:"activity"`
	Language   string                 `json:"language"`
}
