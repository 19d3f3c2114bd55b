package service

import (
	"context"
	"sync"
	"time"

	"pumphouse-kiosk-be/internal/config"
	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/pkg/serverutils"
	"pumphouse-kiosk-be/internal/repository/memory"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/events"
	"pumphouse-kiosk-be/pkg/geometry"
	"pumphouse-kiosk-be/pkg/kiosk"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IEditorService drives the admin polygon editor: transient drafts for new
// outlines, and optimistic vertex edits on persisted hotspots with debounced
// writes behind them.
type IEditorService interface {
	OpenDraft(ctx context.Context, req *dto.OpenDraftRequest, aspect float64) (*dto.DraftResponse, error)
	AddVertex(ctx context.Context, req *dto.AddVertexRequest) (*dto.AddVertexResponse, error)
	DiscardDraft(ctx context.Context, id uuid.UUID) error
	CommitDraft(ctx context.Context, req *dto.CloseDraftRequest) (*dto.CreateHotspotResponse, error)
	DragVertex(ctx context.Context, req *dto.VertexOpRequest) (*dto.VertexOpResponse, error)
	InsertMidpoint(ctx context.Context, req *dto.VertexOpRequest) (*dto.VertexOpResponse, error)
	DeleteVertex(ctx context.Context, req *dto.VertexOpRequest) (*dto.VertexOpResponse, error)
	Flush(id uuid.UUID)
}

type editorService struct {
	uowFactory       unitofwork.RepositoryFactory
	draftRepository  *memory.DraftRepository
	publisherService IPublisherService
	logger           logger.ILogger
	kioskCfg         config.KioskConfig

	mu sync.Mutex
	// working holds the optimistic in-memory polygon per hotspot while
	// edits are in flight. The renderer reads from here, not the database.
	working map[uuid.UUID]geometry.Polygon
	pending map[uuid.UUID]*time.Timer
}

func NewEditorService(
	uowFactory unitofwork.RepositoryFactory,
	draftRepository *memory.DraftRepository,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
	kioskCfg config.KioskConfig,
) IEditorService {
	return &editorService{
		uowFactory:       uowFactory,
		draftRepository:  draftRepository,
		publisherService: publisherService,
		logger:           sysLogger,
		kioskCfg:         kioskCfg,
		working:          make(map[uuid.UUID]geometry.Polygon),
		pending:          make(map[uuid.UUID]*time.Timer),
	}
}

func (s *editorService) OpenDraft(ctx context.Context, req *dto.OpenDraftRequest, aspect float64) (*dto.DraftResponse, error) {
	draft := &kiosk.EditorDraft{
		Id:        uuid.New(),
		HotspotId: req.HotspotId,
		Draft: geometry.Draft{
			Aspect:         aspect,
			CloseThreshold: s.kioskCfg.CloseThresholdPct,
		},
	}

	if req.HotspotId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: *req.HotspotId})
		if err != nil {
			return nil, err
		}
		if hotspot == nil {
			return nil, serverutils.ErrNotFound
		}
		polygon, ok := hotspot.Shape.(geometry.Polygon)
		if !ok {
			return nil, fiber.NewError(fiber.StatusConflict, "hotspot is not a polygon")
		}
		draft.Draft.Points = append([]geometry.Point(nil), polygon.Points...)
	}

	s.draftRepository.Save(draft)
	return &dto.DraftResponse{
		Id:        draft.Id,
		HotspotId: draft.HotspotId,
		Points:    draft.Draft.Points,
	}, nil
}

// AddVertex appends a point to an open draft. Clicking close enough to the
// first vertex closes the ring instead of adding a near-duplicate point.
func (s *editorService) AddVertex(ctx context.Context, req *dto.AddVertexRequest) (*dto.AddVertexResponse, error) {
	draft, found := s.draftRepository.Get(req.Id)
	if !found {
		return nil, serverutils.ErrNotFound
	}

	closed := draft.Draft.AddVertex(geometry.Point{X: req.X, Y: req.Y})
	s.draftRepository.Save(draft)

	return &dto.AddVertexResponse{
		Closed: closed,
		Points: draft.Draft.Points,
	}, nil
}

func (s *editorService) DiscardDraft(ctx context.Context, id uuid.UUID) error {
	s.draftRepository.Delete(id)
	return nil
}

// CommitDraft closes the draft ring and persists it, either as a new hotspot
// or as the replacement outline of the hotspot the draft was opened from.
func (s *editorService) CommitDraft(ctx context.Context, req *dto.CloseDraftRequest) (*dto.CreateHotspotResponse, error) {
	draft, found := s.draftRepository.Get(req.Id)
	if !found {
		return nil, serverutils.ErrNotFound
	}

	polygon, err := draft.Draft.Close()
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	var id uuid.UUID
	if draft.HotspotId != nil {
		hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: *draft.HotspotId})
		if err != nil {
			return nil, err
		}
		if hotspot == nil {
			return nil, serverutils.ErrNotFound
		}
		hotspot.Shape = polygon
		if req.Names != nil {
			hotspot.Names = req.Names
		}
		if req.Descriptions != nil {
			hotspot.Descriptions = req.Descriptions
		}
		now := time.Now()
		hotspot.UpdatedAt = &now
		if err := uow.HotspotRepository().Update(ctx, hotspot); err != nil {
			return nil, err
		}
		id = hotspot.Id
		s.publisherService.Publish(events.NewHotspotSaved(hotspot.Id, hotspot.Slug))
	} else {
		hotspot := entity.Hotspot{
			Id:           uuid.New(),
			Slug:         req.Slug,
			Shape:        polygon,
			Names:        req.Names,
			Descriptions: req.Descriptions,
			Active:       true,
			CreatedAt:    time.Now(),
		}
		if err := uow.HotspotRepository().Create(ctx, &hotspot); err != nil {
			return nil, err
		}
		id = hotspot.Id
		s.publisherService.Publish(events.NewHotspotSaved(hotspot.Id, hotspot.Slug))
	}

	s.draftRepository.Delete(req.Id)
	return &dto.CreateHotspotResponse{Id: id}, nil
}

func (s *editorService) DragVertex(ctx context.Context, req *dto.VertexOpRequest) (*dto.VertexOpResponse, error) {
	return s.applyVertexOp(ctx, req.HotspotId, func(pg geometry.Polygon) (geometry.Polygon, error) {
		return pg.DragVertex(req.Index, geometry.Point{X: req.X, Y: req.Y})
	})
}

func (s *editorService) InsertMidpoint(ctx context.Context, req *dto.VertexOpRequest) (*dto.VertexOpResponse, error) {
	return s.applyVertexOp(ctx, req.HotspotId, func(pg geometry.Polygon) (geometry.Polygon, error) {
		return pg.InsertMidpoint(req.Index)
	})
}

func (s *editorService) DeleteVertex(ctx context.Context, req *dto.VertexOpRequest) (*dto.VertexOpResponse, error) {
	return s.applyVertexOp(ctx, req.HotspotId, func(pg geometry.Polygon) (geometry.Polygon, error) {
		return pg.DeleteVertex(req.Index)
	})
}

// applyVertexOp mutates the in-memory working copy immediately and schedules
// a debounced write. The caller gets the new points without waiting on the
// database; a failed write surfaces later as a SAVE_FAILED event.
func (s *editorService) applyVertexOp(ctx context.Context, id uuid.UUID, op func(geometry.Polygon) (geometry.Polygon, error)) (*dto.VertexOpResponse, error) {
	s.mu.Lock()
	polygon, ok := s.working[id]
	s.mu.Unlock()

	if !ok {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if hotspot == nil {
			return nil, serverutils.ErrNotFound
		}
		polygon, ok = hotspot.Shape.(geometry.Polygon)
		if !ok {
			return nil, fiber.NewError(fiber.StatusConflict, "hotspot is not a polygon")
		}
	}

	updated, err := op(polygon)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.working[id] = updated
	s.scheduleFlushLocked(id)
	s.mu.Unlock()

	return &dto.VertexOpResponse{Points: updated.Points}, nil
}

func (s *editorService) scheduleFlushLocked(id uuid.UUID) {
	if t, ok := s.pending[id]; ok {
		t.Stop()
	}
	s.pending[id] = time.AfterFunc(s.kioskCfg.SaveDebounce, func() {
		s.Flush(id)
	})
}

// Flush writes the working copy for one hotspot to the database now. Fire
// and forget: the working copy stays authoritative even when the write
// fails, there is no rollback of the on-screen geometry.
func (s *editorService) Flush(id uuid.UUID) {
	s.mu.Lock()
	polygon, ok := s.working[id]
	if t, pending := s.pending[id]; pending {
		t.Stop()
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: id})
	if err == nil && hotspot == nil {
		err = serverutils.ErrNotFound
	}
	if err == nil {
		hotspot.Shape = polygon
		now := time.Now()
		hotspot.UpdatedAt = &now
		err = uow.HotspotRepository().Update(ctx, hotspot)
	}

	if err != nil {
		s.logger.Error("Editor", "Debounced save failed", map[string]interface{}{
			"hotspot_id": id,
			"error":      err.Error(),
		})
		s.publisherService.Publish(events.NewSaveFailed("hotspot", id, err.Error()))
		return
	}

	s.publisherService.Publish(events.NewHotspotSaved(hotspot.Id, hotspot.Slug))
}
