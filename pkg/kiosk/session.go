package kiosk

import (
	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/google/uuid"
)

// EditorDraft is an admin polygon-authoring session held in memory. Drafts
// are scratch state: they expire if abandoned and only touch the store when
// closed.
type EditorDraft struct {
	Id uuid.UUID `json:"id"`

	// HotspotId is set when editing an existing hotspot's outline, nil
	// when drawing a brand new one.
	HotspotId *uuid.UUID `json:"hotspot_id,omitempty"`

	Draft geometry.Draft `json:"draft"`
}

// Selection is the app-wide selected hotspot; at most one exists.
type Selection struct {
	HotspotId uuid.UUID `json:"hotspot_id"`
	Slug      string    `json:"slug"`
}
