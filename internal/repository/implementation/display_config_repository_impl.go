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

type DisplayConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DisplayConfigMapper
}

func NewDisplayConfigRepository(db *gorm.DB) contract.DisplayConfigRepository {
	return &DisplayConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewDisplayConfigMapper(),
	}
}

func (r *DisplayConfigRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DisplayConfigRepositoryImpl) Create(ctx context.Context, config *entity.DisplayConfig) error {
	m, err := r.mapper.ToModel(config)
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
	*config = *e
	return nil
}

func (r *DisplayConfigRepositoryImpl) Update(ctx context.Context, config *entity.DisplayConfig) error {
	m, err := r.mapper.ToModel(config)
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
	*config = *e
	return nil
}

func (r *DisplayConfigRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DisplayConfig{}, id).Error
}

func (r *DisplayConfigRepositoryImpl) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.DisplayConfig{}).
		Where("active = ?", true).
		Update("active", false).Error
}

func (r *DisplayConfigRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DisplayConfig, error) {
	var m model.DisplayConfig
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *DisplayConfigRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DisplayConfig, error) {
	var models []*model.DisplayConfig
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *DisplayConfigRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DisplayConfig{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
