package service

import (
	"context"
	"encoding/json"
	"time"

	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/pkg/serverutils"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/events"
	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/google/uuid"
)

type IHotspotService interface {
	GetAll(ctx context.Context, lang string, includeInactive bool) ([]*dto.HotspotListItem, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.HotspotResponse, error)
	Create(ctx context.Context, req *dto.CreateHotspotRequest) (*dto.CreateHotspotResponse, error)
	Update(ctx context.Context, req *dto.UpdateHotspotRequest) (*dto.HotspotResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetViewpoint(ctx context.Context, req *dto.SetViewpointRequest) error
}

type hotspotService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
	defaultLanguage  string
}

func NewHotspotService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
	defaultLanguage string,
) IHotspotService {
	return &hotspotService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           sysLogger,
		defaultLanguage:  defaultLanguage,
	}
}

func (s *hotspotService) GetAll(ctx context.Context, lang string, includeInactive bool) ([]*dto.HotspotListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.BySortOrder{}}
	if !includeInactive {
		specs = append(specs, specification.ActiveOnly{})
	}

	hotspots, err := uow.HotspotRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	if lang == "" {
		lang = s.defaultLanguage
	}

	result := make([]*dto.HotspotListItem, 0, len(hotspots))
	for _, h := range hotspots {
		bounds, err := geometry.EncodeShape(h.Shape)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.HotspotListItem{
			Id:           h.Id,
			Slug:         h.Slug,
			Shape:        string(h.Shape.Kind()),
			Bounds:       bounds,
			Name:         h.NameIn(lang, s.defaultLanguage),
			Description:  h.DescriptionIn(lang, s.defaultLanguage),
			HasViewpoint: h.Viewpoint != nil,
		})
	}
	return result, nil
}

func (s *hotspotService) Show(ctx context.Context, id uuid.UUID) (*dto.HotspotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if hotspot == nil {
		return nil, serverutils.ErrNotFound
	}
	return toHotspotResponse(hotspot)
}

func (s *hotspotService) Create(ctx context.Context, req *dto.CreateHotspotRequest) (*dto.CreateHotspotResponse, error) {
	shape, err := geometry.DecodeShape(geometry.Kind(req.Shape), req.Bounds)
	if err != nil {
		return nil, err
	}
	if req.Viewpoint != nil {
		if err := req.Viewpoint.Validate(); err != nil {
			return nil, &serverutils.ValidationError{Fields: []string{err.Error()}}
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hotspot := entity.Hotspot{
		Id:           uuid.New(),
		Slug:         req.Slug,
		Shape:        shape,
		Viewpoint:    req.Viewpoint,
		Names:        req.Names,
		Descriptions: req.Descriptions,
		Active:       active,
		SortOrder:    req.SortOrder,
		CreatedAt:    time.Now(),
	}

	if err := uow.HotspotRepository().Create(ctx, &hotspot); err != nil {
		return nil, err
	}

	s.publisherService.Publish(events.NewHotspotSaved(hotspot.Id, hotspot.Slug))
	return &dto.CreateHotspotResponse{Id: hotspot.Id}, nil
}

func (s *hotspotService) Update(ctx context.Context, req *dto.UpdateHotspotRequest) (*dto.HotspotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if hotspot == nil {
		return nil, serverutils.ErrNotFound
	}

	if req.Slug != nil {
		hotspot.Slug = *req.Slug
	}
	if req.Shape != nil && req.Bounds != nil {
		shape, err := geometry.DecodeShape(geometry.Kind(*req.Shape), req.Bounds)
		if err != nil {
			return nil, err
		}
		hotspot.Shape = shape
	} else if req.Bounds != nil {
		shape, err := geometry.DecodeShape(hotspot.Shape.Kind(), req.Bounds)
		if err != nil {
			return nil, err
		}
		hotspot.Shape = shape
	}
	if req.Names != nil {
		hotspot.Names = req.Names
	}
	if req.Descriptions != nil {
		hotspot.Descriptions = req.Descriptions
	}
	if req.Active != nil {
		hotspot.Active = *req.Active
	}
	if req.SortOrder != nil {
		hotspot.SortOrder = *req.SortOrder
	}
	now := time.Now()
	hotspot.UpdatedAt = &now

	if err := uow.HotspotRepository().Update(ctx, hotspot); err != nil {
		return nil, err
	}

	s.publisherService.Publish(events.NewHotspotSaved(hotspot.Id, hotspot.Slug))
	return toHotspotResponse(hotspot)
}

func (s *hotspotService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.HotspotRepository().Delete(ctx, id)
}

// SetViewpoint captures a camera pose onto a hotspot (admin "save current
// view" button).
func (s *hotspotService) SetViewpoint(ctx context.Context, req *dto.SetViewpointRequest) error {
	if err := req.Pose.Validate(); err != nil {
		return &serverutils.ValidationError{Fields: []string{err.Error()}}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if hotspot == nil {
		return serverutils.ErrNotFound
	}

	pose := req.Pose
	hotspot.Viewpoint = &pose
	now := time.Now()
	hotspot.UpdatedAt = &now

	if err := uow.HotspotRepository().Update(ctx, hotspot); err != nil {
		return err
	}

	s.logger.Info("Hotspot", "Viewpoint captured", map[string]interface{}{
		"hotspot_id": hotspot.Id,
		"slug":       hotspot.Slug,
	})
	s.publisherService.Publish(events.NewHotspotSaved(hotspot.Id, hotspot.Slug))
	return nil
}

func toHotspotResponse(h *entity.Hotspot) (*dto.HotspotResponse, error) {
	bounds, err := geometry.EncodeShape(h.Shape)
	if err != nil {
		return nil, err
	}
	return &dto.HotspotResponse{
		Id:           h.Id,
		Slug:         h.Slug,
		Shape:        string(h.Shape.Kind()),
		Bounds:       json.RawMessage(bounds),
		Viewpoint:    h.Viewpoint,
		Names:        h.Names,
		Descriptions: h.Descriptions,
		Active:       h.Active,
		SortOrder:    h.SortOrder,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}, nil
}
