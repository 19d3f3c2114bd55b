package service

import (
	"context"
	"testing"
	"time"

	"pumphouse-kiosk-be/internal/config"
	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/events"
	"pumphouse-kiosk-be/pkg/geometry"
	"pumphouse-kiosk-be/pkg/kiosk"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKioskConfig() config.KioskConfig {
	return config.KioskConfig{
		IdleTimeout:        2 * time.Minute,
		TransitionDuration: 2 * time.Second,
		FrameTick:          16 * time.Millisecond,
		SaveDebounce:       400 * time.Millisecond,
		CloseThresholdPct:  2.0,
		DefaultLanguage:    "de",
	}
}

func newTestScene(t *testing.T) (ISceneService, *fakeFactory, *fakePublisher, *camera.Animator) {
	t.Helper()
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	animator := camera.NewAnimator(camera.Pose{}, nopSink{}, 16*time.Millisecond)
	monitor := kiosk.NewMonitor(2 * time.Minute)
	svc := NewSceneService(factory, publisher, nopLogger{}, animator, monitor, testKioskConfig())
	return svc, factory, publisher, animator
}

func seedHotspot(t *testing.T, factory *fakeFactory, h entity.Hotspot) entity.Hotspot {
	t.Helper()
	if h.Id == uuid.Nil {
		h.Id = uuid.New()
	}
	h.Active = true
	require.NoError(t, factory.uow.hotspots.Create(context.Background(), &h))
	return h
}

func TestTapHitStartsTransition(t *testing.T) {
	svc, factory, publisher, animator := newTestScene(t)

	fov := 50.0
	seedHotspot(t, factory, entity.Hotspot{
		Slug:  "boiler",
		Shape: geometry.Circle{CX: 50, CY: 50, R: 10},
		Viewpoint: &camera.Pose{
			Position: camera.Vec3{X: 1, Y: 2, Z: 3},
			FOV:      &fov,
		},
		Names: map[string]string{"de": "Kessel", "en": "Boiler"},
	})

	res, err := svc.Tap(context.Background(), &dto.TapRequest{X: 50, Y: 50}, "en")
	require.NoError(t, err)
	require.NotNil(t, res.Hit)

	assert.Equal(t, "boiler", res.Hit.Slug)
	assert.Equal(t, "Boiler", res.Hit.Name)
	assert.True(t, res.Hit.Transitioning)
	assert.True(t, animator.State().InProgress)

	assert.Contains(t, publisher.typesSeen(), events.TypeHotspotSelected)
	assert.Contains(t, publisher.typesSeen(), events.TypeTransitionStarted)
}

func TestTapMissClearsSelection(t *testing.T) {
	svc, factory, publisher, _ := newTestScene(t)

	seedHotspot(t, factory, entity.Hotspot{
		Slug:  "boiler",
		Shape: geometry.Circle{CX: 50, CY: 50, R: 5},
	})

	res, err := svc.Tap(context.Background(), &dto.TapRequest{X: 50, Y: 50}, "")
	require.NoError(t, err)
	require.NotNil(t, res.Hit)

	res, err = svc.Tap(context.Background(), &dto.TapRequest{X: 5, Y: 5}, "")
	require.NoError(t, err)
	assert.Nil(t, res.Hit)

	assert.Contains(t, publisher.typesSeen(), events.TypeHotspotDeselected)

	state, err := svc.State(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, state.Selected)
}

func TestTapPrefersTopmostHotspot(t *testing.T) {
	svc, factory, _, _ := newTestScene(t)

	seedHotspot(t, factory, entity.Hotspot{
		Slug:      "room",
		Shape:     geometry.Rectangle{X: 0, Y: 0, W: 100, H: 100},
		SortOrder: 1,
	})
	seedHotspot(t, factory, entity.Hotspot{
		Slug:      "gauge",
		Shape:     geometry.Circle{CX: 50, CY: 50, R: 5},
		SortOrder: 2,
	})

	res, err := svc.Tap(context.Background(), &dto.TapRequest{X: 50, Y: 50}, "")
	require.NoError(t, err)
	require.NotNil(t, res.Hit)
	assert.Equal(t, "gauge", res.Hit.Slug)
}

func TestSelectWithoutViewpointKeepsCameraStill(t *testing.T) {
	svc, factory, publisher, animator := newTestScene(t)

	h := seedHotspot(t, factory, entity.Hotspot{
		Slug:  "unplaced",
		Shape: geometry.Rectangle{X: 10, Y: 10, W: 20, H: 20},
	})

	res, err := svc.Select(context.Background(), h.Id, "")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.False(t, res.Transitioning)
	assert.False(t, animator.State().InProgress)
	assert.Contains(t, publisher.typesSeen(), events.TypeHotspotSelected)
	assert.NotContains(t, publisher.typesSeen(), events.TypeTransitionStarted)
}

func TestSelectUnknownHotspot(t *testing.T) {
	svc, _, _, _ := newTestScene(t)

	res, err := svc.Select(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestLanguageFallback(t *testing.T) {
	svc, factory, _, _ := newTestScene(t)

	h := seedHotspot(t, factory, entity.Hotspot{
		Slug:  "only-german",
		Shape: geometry.Rectangle{X: 0, Y: 0, W: 10, H: 10},
		Names: map[string]string{"de": "Nur Deutsch"},
	})

	res, err := svc.Select(context.Background(), h.Id, "en")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Nur Deutsch", res.Name)
}

func TestDeselectReturnsCameraToOverview(t *testing.T) {
	svc, factory, publisher, animator := newTestScene(t)

	require.NoError(t, factory.uow.configs.Create(context.Background(), &entity.DisplayConfig{
		Id:           uuid.New(),
		Name:         "Default",
		TargetWidth:  1920,
		TargetHeight: 1080,
		OverviewPose: camera.Pose{Position: camera.Vec3{X: 9, Y: 9, Z: 9}},
		Active:       true,
	}))
	require.NoError(t, svc.ReloadActiveConfig(context.Background()))

	h := seedHotspot(t, factory, entity.Hotspot{
		Slug:      "boiler",
		Shape:     geometry.Circle{CX: 50, CY: 50, R: 10},
		Viewpoint: &camera.Pose{Position: camera.Vec3{X: 1}},
	})
	_, err := svc.Select(context.Background(), h.Id, "")
	require.NoError(t, err)

	require.NoError(t, svc.Deselect(context.Background()))

	state := animator.State()
	assert.True(t, state.InProgress)
	require.NotNil(t, state.Target)
	assert.InDelta(t, 9.0, state.Target.Position.X, 1e-9)
	assert.InDelta(t, 9.0, state.Target.Position.Y, 1e-9)
	assert.InDelta(t, 9.0, state.Target.Position.Z, 1e-9)

	assert.Contains(t, publisher.typesSeen(), events.TypeHotspotDeselected)
	assert.Equal(t, 2, publisher.countOf(events.TypeTransitionStarted))

	// A second deselect with nothing selected leaves the camera alone.
	require.NoError(t, svc.Deselect(context.Background()))
	assert.Equal(t, 2, publisher.countOf(events.TypeTransitionStarted))
}

func TestForceIdleClearsSelectionAndReturnsToOverview(t *testing.T) {
	svc, factory, publisher, animator := newTestScene(t)

	cfgRepo := factory.uow.configs
	require.NoError(t, cfgRepo.Create(context.Background(), &entity.DisplayConfig{
		Id:           uuid.New(),
		Name:         "Default",
		TargetWidth:  1920,
		TargetHeight: 1080,
		OverviewPose: camera.Pose{Position: camera.Vec3{Y: 12, Z: 30}},
		Active:       true,
	}))
	require.NoError(t, svc.ReloadActiveConfig(context.Background()))

	h := seedHotspot(t, factory, entity.Hotspot{
		Slug:      "boiler",
		Shape:     geometry.Circle{CX: 50, CY: 50, R: 10},
		Viewpoint: &camera.Pose{Position: camera.Vec3{X: 5}},
	})
	_, err := svc.Select(context.Background(), h.Id, "")
	require.NoError(t, err)

	svc.ForceIdle()

	assert.Contains(t, publisher.typesSeen(), events.TypeHotspotDeselected)
	assert.Contains(t, publisher.typesSeen(), events.TypeIdleEntered)

	state := animator.State()
	require.NotNil(t, state.Target)
	assert.InDelta(t, 30.0, state.Target.Position.Z, 1e-9)

	sceneState, err := svc.State(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, sceneState.Selected)
	assert.Equal(t, string(kiosk.StateIdle), sceneState.Activity)

	// Forcing again while already idle does not replay the idle edge.
	svc.ForceIdle()
	assert.Equal(t, 1, publisher.countOf(events.TypeIdleEntered))
}

func TestTapUsesAspectCompensatedHitTest(t *testing.T) {
	svc, factory, _, _ := newTestScene(t)

	// 16:9 active config. A circle of radius 3 in percent units covers
	// more horizontal percent than vertical once compensated.
	require.NoError(t, factory.uow.configs.Create(context.Background(), &entity.DisplayConfig{
		Id:           uuid.New(),
		Name:         "16x9",
		TargetWidth:  1920,
		TargetHeight: 1080,
		Active:       true,
	}))
	require.NoError(t, svc.ReloadActiveConfig(context.Background()))

	seedHotspot(t, factory, entity.Hotspot{
		Slug:  "gauge",
		Shape: geometry.Circle{CX: 50, CY: 50, R: 3},
	})

	// 4% to the right: compensated dx = 4/(16/9) = 2.25 < 3 → hit.
	res, err := svc.Tap(context.Background(), &dto.TapRequest{X: 54, Y: 50}, "")
	require.NoError(t, err)
	assert.NotNil(t, res.Hit)

	// 4% down: dy stays 4 > 3 → miss.
	res, err = svc.Tap(context.Background(), &dto.TapRequest{X: 50, Y: 54}, "")
	require.NoError(t, err)
	assert.Nil(t, res.Hit)
}
