package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/model"
	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/geometry"

	"gorm.io/datatypes"
)

type HotspotMapper struct{}

func NewHotspotMapper() *HotspotMapper {
	return &HotspotMapper{}
}

func (m *HotspotMapper) ToEntity(h *model.Hotspot) (*entity.Hotspot, error) {
	if h == nil {
		return nil, nil
	}

	shape, err := geometry.DecodeShape(geometry.Kind(h.Shape), h.Bounds)
	if err != nil {
		return nil, fmt.Errorf("hotspot %s: decode bounds: %w", h.Id, err)
	}

	var pose *camera.Pose
	if len(h.Viewpoint) > 0 && string(h.Viewpoint) != "null" {
		var p camera.Pose
		if err := json.Unmarshal(h.Viewpoint, &p); err != nil {
			return nil, fmt.Errorf("hotspot %s: decode viewpoint: %w", h.Id, err)
		}
		pose = &p
	}

	var updatedAt *time.Time
	if !h.UpdatedAt.IsZero() {
		t := h.UpdatedAt
		updatedAt = &t
	}

	return &entity.Hotspot{
		Id:           h.Id,
		Slug:         h.Slug,
		Shape:        shape,
		Viewpoint:    pose,
		Names:        toStringMap(h.Names),
		Descriptions: toStringMap(h.Descriptions),
		Active:       h.Active,
		SortOrder:    h.SortOrder,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (m *HotspotMapper) ToModel(h *entity.Hotspot) (*model.Hotspot, error) {
	if h == nil {
		return nil, nil
	}

	bounds, err := geometry.EncodeShape(h.Shape)
	if err != nil {
		return nil, fmt.Errorf("hotspot %s: encode bounds: %w", h.Id, err)
	}

	var viewpoint datatypes.JSON
	if h.Viewpoint != nil {
		raw, err := json.Marshal(h.Viewpoint)
		if err != nil {
			return nil, fmt.Errorf("hotspot %s: encode viewpoint: %w", h.Id, err)
		}
		viewpoint = raw
	}

	var updatedAt time.Time
	if h.UpdatedAt != nil {
		updatedAt = *h.UpdatedAt
	}

	return &model.Hotspot{
		Id:           h.Id,
		Slug:         h.Slug,
		Shape:        string(h.Shape.Kind()),
		Bounds:       bounds,
		Viewpoint:    viewpoint,
		Names:        toJSONMap(h.Names),
		Descriptions: toJSONMap(h.Descriptions),
		Active:       h.Active,
		SortOrder:    h.SortOrder,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (m *HotspotMapper) ToEntities(models []*model.Hotspot) ([]*entity.Hotspot, error) {
	entities := make([]*entity.Hotspot, len(models))
	for i, h := range models {
		e, err := m.ToEntity(h)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func toStringMap(in datatypes.JSONMap) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func toJSONMap(in map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
