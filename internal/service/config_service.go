package service

import (
	"context"
	"time"

	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/pkg/serverutils"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/events"

	"github.com/google/uuid"
)

type IConfigService interface {
	GetAll(ctx context.Context) ([]*dto.DisplayConfigResponse, error)
	GetActive(ctx context.Context) (*entity.DisplayConfig, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DisplayConfigResponse, error)
	Create(ctx context.Context, req *dto.CreateDisplayConfigRequest) (*dto.CreateDisplayConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateDisplayConfigRequest) (*dto.DisplayConfigResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) error
}

type configService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewConfigService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IConfigService {
	return &configService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *configService) GetAll(ctx context.Context) ([]*dto.DisplayConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	configs, err := uow.DisplayConfigRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DisplayConfigResponse, 0, len(configs))
	for _, c := range configs {
		result = append(result, toConfigResponse(c))
	}
	return result, nil
}

// GetActive returns the one active config, or nil when none is configured
// yet (fresh install).
func (s *configService) GetActive(ctx context.Context) (*entity.DisplayConfig, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DisplayConfigRepository().FindOne(ctx, specification.ActiveOnly{})
}

func (s *configService) Show(ctx context.Context, id uuid.UUID) (*dto.DisplayConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, serverutils.ErrNotFound
	}
	return toConfigResponse(config), nil
}

func (s *configService) Create(ctx context.Context, req *dto.CreateDisplayConfigRequest) (*dto.CreateDisplayConfigResponse, error) {
	if err := req.OverviewPose.Validate(); err != nil {
		return nil, &serverutils.ValidationError{Fields: []string{err.Error()}}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	config := entity.DisplayConfig{
		Id:           uuid.New(),
		Name:         req.Name,
		TargetWidth:  req.TargetWidth,
		TargetHeight: req.TargetHeight,
		OverviewPose: req.OverviewPose,
		CreatedAt:    time.Now(),
	}

	if err := uow.DisplayConfigRepository().Create(ctx, &config); err != nil {
		return nil, err
	}

	return &dto.CreateDisplayConfigResponse{Id: config.Id}, nil
}

func (s *configService) Update(ctx context.Context, req *dto.UpdateDisplayConfigRequest) (*dto.DisplayConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, serverutils.ErrNotFound
	}

	if req.Name != nil {
		config.Name = *req.Name
	}
	if req.TargetWidth != nil {
		config.TargetWidth = *req.TargetWidth
	}
	if req.TargetHeight != nil {
		config.TargetHeight = *req.TargetHeight
	}
	if req.OverviewPose != nil {
		if err := req.OverviewPose.Validate(); err != nil {
			return nil, &serverutils.ValidationError{Fields: []string{err.Error()}}
		}
		config.OverviewPose = *req.OverviewPose
	}
	now := time.Now()
	config.UpdatedAt = &now

	if err := uow.DisplayConfigRepository().Update(ctx, config); err != nil {
		return nil, err
	}

	// Edits to the live config change the aspect ratio and overview pose
	// downstream; announce them the same way activation does.
	if config.Active {
		s.publisherService.Publish(events.NewConfigActivated(config.Id))
	}

	return toConfigResponse(config), nil
}

func (s *configService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DisplayConfigRepository().Delete(ctx, id)
}

// Activate flips the single active flag to the given config, transactionally
// so two configs can never both be active.
func (s *configService) Activate(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	config, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		uow.Rollback()
		return err
	}
	if config == nil {
		uow.Rollback()
		return serverutils.ErrNotFound
	}

	if err := uow.DisplayConfigRepository().DeactivateAll(ctx); err != nil {
		uow.Rollback()
		return err
	}

	config.Active = true
	now := time.Now()
	config.UpdatedAt = &now
	if err := uow.DisplayConfigRepository().Update(ctx, config); err != nil {
		uow.Rollback()
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publisherService.Publish(events.NewConfigActivated(config.Id))
	return nil
}

func toConfigResponse(c *entity.DisplayConfig) *dto.DisplayConfigResponse {
	return &dto.DisplayConfigResponse{
		Id:           c.Id,
		Name:         c.Name,
		TargetWidth:  c.TargetWidth,
		TargetHeight: c.TargetHeight,
		AspectRatio:  c.AspectRatio(),
		OverviewPose: c.OverviewPose,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
