package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes. Cross-component messaging goes through these typed
// events on the in-process bus (and, for the ones the museum CMS cares
// about, out to NATS) instead of stringly-named window events.
const (
	TypeHotspotSelected   = "HOTSPOT_SELECTED"
	TypeHotspotDeselected = "HOTSPOT_DESELECTED"
	TypeHotspotSaved      = "HOTSPOT_SAVED"
	TypeTransitionStarted = "TRANSITION_STARTED"
	TypeTransitionDone    = "TRANSITION_DONE"
	TypeIdleEntered       = "IDLE_ENTERED"
	TypeIdleExited        = "IDLE_EXITED"
	TypeConfigActivated   = "CONFIG_ACTIVATED"
	TypeSaveFailed        = "SAVE_FAILED"
)

func NewHotspotSelected(id uuid.UUID, slug string) Event {
	return BaseEvent{
		Type:       TypeHotspotSelected,
		Data:       map[string]interface{}{"hotspot_id": id.String(), "slug": slug},
		OccurredAt: time.Now(),
	}
}

func NewHotspotDeselected(id uuid.UUID) Event {
	return BaseEvent{
		Type:       TypeHotspotDeselected,
		Data:       map[string]interface{}{"hotspot_id": id.String()},
		OccurredAt: time.Now(),
	}
}

func NewHotspotSaved(id uuid.UUID, slug string) Event {
	return BaseEvent{
		Type:       TypeHotspotSaved,
		Data:       map[string]interface{}{"hotspot_id": id.String(), "slug": slug},
		OccurredAt: time.Now(),
	}
}

func NewTransitionStarted(durationMs int64) Event {
	return BaseEvent{
		Type:       TypeTransitionStarted,
		Data:       map[string]interface{}{"duration_ms": durationMs},
		OccurredAt: time.Now(),
	}
}

func NewTransitionDone() Event {
	return BaseEvent{
		Type:       TypeTransitionDone,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
}

func NewIdleEntered() Event {
	return BaseEvent{
		Type:       TypeIdleEntered,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
}

func NewIdleExited() Event {
	return BaseEvent{
		Type:       TypeIdleExited,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
}

func NewConfigActivated(id uuid.UUID) Event {
	return BaseEvent{
		Type:       TypeConfigActivated,
		Data:       map[string]interface{}{"config_id": id.String()},
		OccurredAt: time.Now(),
	}
}

func NewSaveFailed(kind string, id uuid.UUID, reason string) Event {
	return BaseEvent{
		Type:       TypeSaveFailed,
		Data:       map[string]interface{}{"kind": kind, "record_id": id.String(), "reason": reason},
		OccurredAt: time.Now(),
	}
}
