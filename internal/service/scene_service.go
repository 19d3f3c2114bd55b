package service

import (
	"context"
	"sync"

	"pumphouse-kiosk-be/internal/config"
	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/events"
	"pumphouse-kiosk-be/pkg/geometry"
	"pumphouse-kiosk-be/pkg/kiosk"

	"github.com/google/uuid"
)

// ISceneService coordinates the visitor-facing runtime: tap hit-testing,
// selection, camera transitions and the idle/attract cycle.
type ISceneService interface {
	Tap(ctx context.Context, req *dto.TapRequest, lang string) (*dto.TapResponse, error)
	Select(ctx context.Context, id uuid.UUID, lang string) (*dto.SelectedHotspot, error)
	Deselect(ctx context.Context) error
	State(ctx context.Context, lang string) (*dto.SceneStateResponse, error)
	Touch()
	ReloadActiveConfig(ctx context.Context) error
	ForceIdle()
}

type sceneService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
	animator         *camera.Animator
	monitor          *kiosk.Monitor
	kioskCfg         config.KioskConfig

	mu           sync.Mutex
	selected     *kiosk.Selection
	aspectRatio  float64
	overviewPose *camera.Pose
}

func NewSceneService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
	animator *camera.Animator,
	monitor *kiosk.Monitor,
	kioskCfg config.KioskConfig,
) ISceneService {
	s := &sceneService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           sysLogger,
		animator:         animator,
		monitor:          monitor,
		kioskCfg:         kioskCfg,
		aspectRatio:      16.0 / 9.0,
	}
	animator.SetOnComplete(func(camera.Pose) {
		publisherService.Publish(events.NewTransitionDone())
	})
	monitor.SetCallbacks(s.enterIdle, s.exitIdle)
	return s
}

// Tap resolves a normalized screen coordinate against the active hotspots.
// Topmost wins when shapes overlap; a miss clears the current selection.
func (s *sceneService) Tap(ctx context.Context, req *dto.TapRequest, lang string) (*dto.TapResponse, error) {
	s.monitor.Touch()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hotspots, err := uow.HotspotRepository().FindAll(ctx,
		specification.ActiveOnly{}, specification.BySortOrder{})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	aspect := s.aspectRatio
	s.mu.Unlock()

	point := geometry.Point{X: req.X, Y: req.Y}
	var hit *entity.Hotspot
	for i := len(hotspots) - 1; i >= 0; i-- {
		if hotspots[i].Shape.Contains(point, aspect) {
			hit = hotspots[i]
			break
		}
	}

	if hit == nil {
		if err := s.Deselect(ctx); err != nil {
			return nil, err
		}
		return &dto.TapResponse{}, nil
	}

	selected, err := s.selectHotspot(hit, lang)
	if err != nil {
		return nil, err
	}
	return &dto.TapResponse{Hit: selected}, nil
}

// Select activates a hotspot directly, bypassing hit-testing. The hotspot
// list overlay uses this path.
func (s *sceneService) Select(ctx context.Context, id uuid.UUID, lang string) (*dto.SelectedHotspot, error) {
	s.monitor.Touch()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if hotspot == nil || !hotspot.Active {
		return nil, nil
	}
	return s.selectHotspot(hotspot, lang)
}

func (s *sceneService) selectHotspot(hotspot *entity.Hotspot, lang string) (*dto.SelectedHotspot, error) {
	if lang == "" {
		lang = s.kioskCfg.DefaultLanguage
	}

	s.mu.Lock()
	s.selected = &kiosk.Selection{HotspotId: hotspot.Id, Slug: hotspot.Slug}
	s.mu.Unlock()

	s.publisherService.Publish(events.NewHotspotSelected(hotspot.Id, hotspot.Slug))

	transitioning := false
	if hotspot.Viewpoint != nil {
		// Interrupting an in-flight transition is fine: the animator
		// restarts from wherever the camera currently is.
		if err := s.animator.BeginTransition(*hotspot.Viewpoint, s.kioskCfg.TransitionDuration); err != nil {
			return nil, err
		}
		transitioning = true
		s.publisherService.Publish(events.NewTransitionStarted(s.kioskCfg.TransitionDuration.Milliseconds()))
	} else {
		s.logger.Warn("Scene", "Hotspot has no viewpoint, camera stays put", map[string]interface{}{
			"hotspot_id": hotspot.Id,
			"slug":       hotspot.Slug,
		})
	}

	return &dto.SelectedHotspot{
		Id:            hotspot.Id,
		Slug:          hotspot.Slug,
		Name:          hotspot.NameIn(lang, s.kioskCfg.DefaultLanguage),
		Description:   hotspot.DescriptionIn(lang, s.kioskCfg.DefaultLanguage),
		Transitioning: transitioning,
	}, nil
}

func (s *sceneService) Deselect(ctx context.Context) error {
	s.monitor.Touch()

	s.mu.Lock()
	previous := s.selected
	s.selected = nil
	overview := s.overviewPose
	s.mu.Unlock()

	if previous == nil {
		return nil
	}
	s.publisherService.Publish(events.NewHotspotDeselected(previous.HotspotId))

	// Deselecting hands the camera back to the overview framing.
	if overview != nil {
		if err := s.animator.BeginTransition(*overview, s.kioskCfg.TransitionDuration); err != nil {
			return err
		}
		s.publisherService.Publish(events.NewTransitionStarted(s.kioskCfg.TransitionDuration.Milliseconds()))
	}
	return nil
}

func (s *sceneService) State(ctx context.Context, lang string) (*dto.SceneStateResponse, error) {
	if lang == "" {
		lang = s.kioskCfg.DefaultLanguage
	}

	s.mu.Lock()
	selection := s.selected
	s.mu.Unlock()

	resp := &dto.SceneStateResponse{
		Transition: s.animator.State(),
		Activity:   string(s.monitor.State()),
		Language:   lang,
	}

	if selection != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		hotspot, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: selection.HotspotId})
		if err != nil {
			return nil, err
		}
		if hotspot != nil {
			resp.Selected = &dto.SelectedHotspot{
				Id:            hotspot.Id,
				Slug:          hotspot.Slug,
				Name:          hotspot.NameIn(lang, s.kioskCfg.DefaultLanguage),
				Description:   hotspot.DescriptionIn(lang, s.kioskCfg.DefaultLanguage),
				Transitioning: resp.Transition.InProgress,
			}
		}
	}
	return resp, nil
}

// Touch records visitor activity without any other side effect. The
// websocket layer calls this on every frame of touch input.
func (s *sceneService) Touch() {
	s.monitor.Touch()
}

// ReloadActiveConfig pulls the active display configuration and applies its
// aspect ratio and overview pose. Called at startup and whenever a
// CONFIG_ACTIVATED event lands.
func (s *sceneService) ReloadActiveConfig(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ActiveOnly{})
	if err != nil {
		return err
	}
	if cfg == nil {
		s.logger.Warn("Scene", "No active display config, keeping defaults", nil)
		return nil
	}

	overview := cfg.OverviewPose
	s.mu.Lock()
	s.aspectRatio = cfg.AspectRatio()
	s.overviewPose = &overview
	s.mu.Unlock()

	if s.monitor.State() == kiosk.StateIdle {
		if err := s.animator.BeginTransition(overview, s.kioskCfg.TransitionDuration); err != nil {
			return err
		}
	}

	s.logger.Info("Scene", "Display config applied", map[string]interface{}{
		"config_id":    cfg.Id,
		"aspect_ratio": cfg.AspectRatio(),
	})
	return nil
}

// ForceIdle drops straight into attract mode, skipping the timeout. Exposed
// for the CMS control channel. Going through the monitor keeps the reported
// activity state in step and stops the timeout from firing a second
// idle edge.
func (s *sceneService) ForceIdle() {
	s.monitor.ForceIdle()
}

func (s *sceneService) enterIdle() {
	s.mu.Lock()
	previous := s.selected
	s.selected = nil
	overview := s.overviewPose
	s.mu.Unlock()

	if previous != nil {
		s.publisherService.Publish(events.NewHotspotDeselected(previous.HotspotId))
	}
	if overview != nil {
		if err := s.animator.BeginTransition(*overview, s.kioskCfg.TransitionDuration); err != nil {
			s.logger.Error("Scene", "Attract transition failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			s.publisherService.Publish(events.NewTransitionStarted(s.kioskCfg.TransitionDuration.Milliseconds()))
		}
	}
	s.publisherService.Publish(events.NewIdleEntered())
}

func (s *sceneService) exitIdle() {
	s.publisherService.Publish(events.NewIdleExited())
}
