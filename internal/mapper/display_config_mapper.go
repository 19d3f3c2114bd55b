package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/model"
	"pumphouse-kiosk-be/pkg/camera"
)

type DisplayConfigMapper struct{}

func NewDisplayConfigMapper() *DisplayConfigMapper {
	return &DisplayConfigMapper{}
}

func (m *DisplayConfigMapper) ToEntity(c *model.DisplayConfig) (*entity.DisplayConfig, error) {
	if c == nil {
		return nil, nil
	}

	var pose camera.Pose
	if err := json.Unmarshal(c.OverviewPose, &pose); err != nil {
		return nil, fmt.Errorf("display config %s: decode overview pose: %w", c.Id, err)
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.DisplayConfig{
		Id:           c.Id,
		Name:         c.Name,
		TargetWidth:  c.TargetWidth,
		TargetHeight: c.TargetHeight,
		OverviewPose: pose,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (m *DisplayConfigMapper) ToModel(c *entity.DisplayConfig) (*model.DisplayConfig, error) {
	if c == nil {
		return nil, nil
	}

	raw, err := json.Marshal(c.OverviewPose)
	if err != nil {
		return nil, fmt.Errorf("display config %s: encode overview pose: %w", c.Id, err)
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.DisplayConfig{
		Id:           c.Id,
		Name:         c.Name,
		TargetWidth:  c.TargetWidth,
		TargetHeight: c.TargetHeight,
		OverviewPose: raw,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (m *DisplayConfigMapper) ToEntities(models []*model.DisplayConfig) ([]*entity.DisplayConfig, error) {
	entities := make([]*entity.DisplayConfig, len(models))
	for i, c := range models {
		e, err := m.ToEntity(c)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
