package mapper

import (
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/model"
)

type OperatorMapper struct{}

func NewOperatorMapper() *OperatorMapper {
	return &OperatorMapper{}
}

func (m *OperatorMapper) ToEntity(o *model.Operator) *entity.Operator {
	if o == nil {
		return nil
	}
	return &entity.Operator{
		Id:        o.Id,
		Name:      o.Name,
		PinHash:   o.PinHash,
		CreatedAt: o.CreatedAt,
	}
}

func (m *OperatorMapper) ToModel(o *entity.Operator) *model.Operator {
	if o == nil {
		return nil
	}
	return &model.Operator{
		Id:        o.Id,
		Name:      o.Name,
		PinHash:   o.PinHash,
		CreatedAt: o.CreatedAt,
	}
}
