package service

import (
	"context"
	"testing"
	"time"

	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/repository/memory"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/pkg/events"
	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, debounce time.Duration) (IEditorService, *fakeFactory, *fakePublisher) {
	t.Helper()
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	cfg := testKioskConfig()
	cfg.SaveDebounce = debounce
	svc := NewEditorService(factory, memory.NewDraftRepository(), publisher, nopLogger{}, cfg)
	return svc, factory, publisher
}

func seedPolygonHotspot(t *testing.T, factory *fakeFactory) entity.Hotspot {
	t.Helper()
	h := entity.Hotspot{
		Id:   uuid.New(),
		Slug: "engine",
		Shape: geometry.Polygon{Points: []geometry.Point{
			{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30},
		}},
		Active: true,
	}
	require.NoError(t, factory.uow.hotspots.Create(context.Background(), &h))
	return h
}

func TestDraftLifecycle(t *testing.T) {
	svc, _, _ := newTestEditor(t, 400*time.Millisecond)
	ctx := context.Background()

	draft, err := svc.OpenDraft(ctx, &dto.OpenDraftRequest{}, 16.0/9.0)
	require.NoError(t, err)
	assert.Empty(t, draft.Points)

	for _, p := range []geometry.Point{{X: 20, Y: 20}, {X: 40, Y: 20}, {X: 40, Y: 40}, {X: 20, Y: 40}} {
		res, err := svc.AddVertex(ctx, &dto.AddVertexRequest{Id: draft.Id, X: p.X, Y: p.Y})
		require.NoError(t, err)
		assert.False(t, res.Closed)
	}

	// Click back near the first vertex: ring closes, no fifth point.
	res, err := svc.AddVertex(ctx, &dto.AddVertexRequest{Id: draft.Id, X: 20.5, Y: 20.5})
	require.NoError(t, err)
	assert.True(t, res.Closed)
	assert.Len(t, res.Points, 4)

	created, err := svc.CommitDraft(ctx, &dto.CloseDraftRequest{
		Id:    draft.Id,
		Slug:  "new-area",
		Names: map[string]string{"de": "Neu"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)

	// Draft is gone once committed.
	_, err = svc.AddVertex(ctx, &dto.AddVertexRequest{Id: draft.Id, X: 1, Y: 1})
	assert.Error(t, err)
}

func TestCommitRejectsDegenerateDraft(t *testing.T) {
	svc, _, _ := newTestEditor(t, 400*time.Millisecond)
	ctx := context.Background()

	draft, err := svc.OpenDraft(ctx, &dto.OpenDraftRequest{}, 1)
	require.NoError(t, err)

	_, err = svc.AddVertex(ctx, &dto.AddVertexRequest{Id: draft.Id, X: 10, Y: 10})
	require.NoError(t, err)
	_, err = svc.AddVertex(ctx, &dto.AddVertexRequest{Id: draft.Id, X: 20, Y: 10})
	require.NoError(t, err)

	_, err = svc.CommitDraft(ctx, &dto.CloseDraftRequest{Id: draft.Id, Slug: "too-small"})
	assert.ErrorIs(t, err, geometry.ErrTooFewVertices)
}

func TestVertexOpsDebounceIntoOneSave(t *testing.T) {
	svc, factory, publisher := newTestEditor(t, 30*time.Millisecond)
	ctx := context.Background()
	h := seedPolygonHotspot(t, factory)

	// A drag burst: many position updates in quick succession.
	for i := 0; i < 5; i++ {
		res, err := svc.DragVertex(ctx, &dto.VertexOpRequest{
			HotspotId: h.Id,
			Index:     0,
			X:         float64(11 + i),
			Y:         10,
		})
		require.NoError(t, err)
		assert.InDelta(t, float64(11+i), res.Points[0].X, 1e-9)
	}

	assert.Equal(t, 0, factory.uow.hotspots.updateCount())

	assert.Eventually(t, func() bool {
		return factory.uow.hotspots.updateCount() == 1
	}, time.Second, 5*time.Millisecond)

	// No second write sneaks in after the debounce fires.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, factory.uow.hotspots.updateCount())
	assert.Contains(t, publisher.typesSeen(), events.TypeHotspotSaved)

	stored, err := factory.uow.hotspots.FindOne(ctx, specification.ByID{ID: h.Id})
	require.NoError(t, err)
	polygon := stored.Shape.(geometry.Polygon)
	assert.InDelta(t, 15.0, polygon.Points[0].X, 1e-9)
}

func TestFailedSaveKeepsEditsAndPublishesFailure(t *testing.T) {
	svc, factory, publisher := newTestEditor(t, 10*time.Millisecond)
	ctx := context.Background()
	h := seedPolygonHotspot(t, factory)
	factory.uow.hotspots.failUpdate = true

	res, err := svc.DragVertex(ctx, &dto.VertexOpRequest{HotspotId: h.Id, Index: 0, X: 50, Y: 50})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.Points[0].X, 1e-9)

	assert.Eventually(t, func() bool {
		for _, typ := range publisher.typesSeen() {
			if typ == events.TypeSaveFailed {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	// The optimistic copy survives; the next op builds on it.
	res, err = svc.InsertMidpoint(ctx, &dto.VertexOpRequest{HotspotId: h.Id, Index: 0})
	require.NoError(t, err)
	assert.Len(t, res.Points, 5)
	assert.InDelta(t, 50.0, res.Points[0].X, 1e-9)
}

func TestDeleteVertexRefusedOnTriangle(t *testing.T) {
	svc, factory, _ := newTestEditor(t, time.Hour)
	ctx := context.Background()

	h := entity.Hotspot{
		Id:   uuid.New(),
		Slug: "triangle",
		Shape: geometry.Polygon{Points: []geometry.Point{
			{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 15, Y: 20},
		}},
		Active: true,
	}
	require.NoError(t, factory.uow.hotspots.Create(ctx, &h))

	_, err := svc.DeleteVertex(ctx, &dto.VertexOpRequest{HotspotId: h.Id, Index: 1})
	assert.ErrorIs(t, err, geometry.ErrMinVertices)
}

func TestReopenExistingPolygonAsDraft(t *testing.T) {
	svc, factory, _ := newTestEditor(t, time.Hour)
	ctx := context.Background()
	h := seedPolygonHotspot(t, factory)

	draft, err := svc.OpenDraft(ctx, &dto.OpenDraftRequest{HotspotId: &h.Id}, 16.0/9.0)
	require.NoError(t, err)
	assert.Len(t, draft.Points, 4)
	assert.Equal(t, &h.Id, draft.HotspotId)
}
