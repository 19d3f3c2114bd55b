package implementation

import (
	"context"
	"errors"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/mapper"
	"pumphouse-kiosk-be/internal/model"
	"pumphouse-kiosk-be/internal/repository/contract"
	"pumphouse-kiosk-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HotspotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HotspotMapper
}

func NewHotspotRepository(db *gorm.DB) contract.HotspotRepository {
	return &HotspotRepositoryImpl{
		db:     db,
		mapper: mapper.NewHotspotMapper(),
	}
}

func (r *HotspotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HotspotRepositoryImpl) Create(ctx context.Context, hotspot *entity.Hotspot) error {
	m, err := r.mapper.ToModel(hotspot)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*hotspot = *e
	return nil
}

func (r *HotspotRepositoryImpl) Update(ctx context.Context, hotspot *entity.Hotspot) error {
	m, err := r.mapper.ToModel(hotspot)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*hotspot = *e
	return nil
}

func (r *HotspotRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Hotspot{}, id).Error
}

func (r *HotspotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Hotspot, error) {
	var m model.Hotspot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *HotspotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Hotspot, error) {
	var models []*model.Hotspot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *HotspotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Hotspot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
