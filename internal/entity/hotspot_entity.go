package entity

import (
	"time"

	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/google/uuid"
)

// Hotspot is a tappable region overlaid on the 3D view, with bilingual
// descriptive content and an optional saved camera viewpoint.
type Hotspot struct {
	Id           uuid.UUID
	Slug         string
	Shape        geometry.Shape
	Viewpoint    *camera.Pose
	Names        map[string]string
	Descriptions map[string]string
	Active       bool
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// NameIn returns the display name for lang, falling back to fallback and
// then to any available language.
func (h *Hotspot) NameIn(lang, fallback string) string {
	return pickLocalized(h.Names, lang, fallback)
}

func (h *Hotspot) DescriptionIn(lang, fallback string) string {
	return pickLocalized(h.Descriptions, lang, fallback)
}

func pickLocalized(m map[string]string, lang, fallback string) string {
	if v, ok := m[lang]; ok && v != "" {
		return v
	}
	if v, ok := m[fallback]; ok && v != "" {
		return v
	}
	for _, v := range m {
		if v != "" {
			return v
		}
	}
	return ""
}
