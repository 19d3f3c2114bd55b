package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/database"
	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	return unitofwork.NewRepositoryFactory(gormDB)
}

func TestGormConnection(t *testing.T) {
	uowFactory := testDB(t)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.HotspotRepository())
	assert.NotNil(t, uow.DisplayConfigRepository())
	assert.NotNil(t, uow.OperatorRepository())

	t.Run("Check Hotspot Repository", func(t *testing.T) {
		count, err := uow.HotspotRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Hotspot count: %d", count)
	})
}

// A captured viewpoint must survive the full trip through JSONB and come
// back field-exact, including the optional FOV.
func TestViewpointRoundTrip(t *testing.T) {
	uowFactory := testDB(t)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	fov := 52.5
	hotspot := entity.Hotspot{
		Id:   uuid.New(),
		Slug: "it-roundtrip-" + uuid.NewString()[:8],
		Shape: geometry.Polygon{Points: []geometry.Point{
			{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 15, Y: 20},
		}},
		Viewpoint: &camera.Pose{
			Position: camera.Vec3{X: 1.25, Y: -3.5, Z: 18},
			Rotation: camera.Euler{Pitch: -12.5, Yaw: 340, Roll: 0.25},
			FOV:      &fov,
		},
		Names:     map[string]string{"de": "Test", "en": "Test"},
		Active:    true,
		CreatedAt: time.Now(),
	}

	require.NoError(t, uow.HotspotRepository().Create(ctx, &hotspot))
	t.Cleanup(func() {
		_ = uow.HotspotRepository().Delete(ctx, hotspot.Id)
	})

	loaded, err := uow.HotspotRepository().FindOne(ctx, specification.ByID{ID: hotspot.Id})
	require.NoError(t, err)
	require.NotNil(t, loaded)

	require.NotNil(t, loaded.Viewpoint)
	assert.Equal(t, hotspot.Viewpoint.Position, loaded.Viewpoint.Position)
	assert.Equal(t, hotspot.Viewpoint.Rotation, loaded.Viewpoint.Rotation)
	require.NotNil(t, loaded.Viewpoint.FOV)
	assert.Equal(t, fov, *loaded.Viewpoint.FOV)

	polygon, ok := loaded.Shape.(geometry.Polygon)
	require.True(t, ok)
	assert.Equal(t, 3, len(polygon.Points))
}

// Activation is exclusive: flipping one config on must flip every other
// config off inside the same transaction.
func TestDisplayConfigActivation(t *testing.T) {
	uowFactory := testDB(t)
	ctx := context.Background()

	uow := uowFactory.NewUnitOfWork(ctx)
	a := entity.DisplayConfig{Id: uuid.New(), Name: "it-a-" + uuid.NewString()[:8], TargetWidth: 1920, TargetHeight: 1080, Active: true, CreatedAt: time.Now()}
	b := entity.DisplayConfig{Id: uuid.New(), Name: "it-b-" + uuid.NewString()[:8], TargetWidth: 3840, TargetHeight: 2160, CreatedAt: time.Now()}
	require.NoError(t, uow.DisplayConfigRepository().Create(ctx, &a))
	require.NoError(t, uow.DisplayConfigRepository().Create(ctx, &b))
	t.Cleanup(func() {
		_ = uow.DisplayConfigRepository().Delete(ctx, a.Id)
		_ = uow.DisplayConfigRepository().Delete(ctx, b.Id)
	})

	tx := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	require.NoError(t, tx.DisplayConfigRepository().DeactivateAll(ctx))
	b.Active = true
	require.NoError(t, tx.DisplayConfigRepository().Update(ctx, &b))
	require.NoError(t, tx.Commit())

	reloadedA, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ByID{ID: a.Id})
	require.NoError(t, err)
	require.NotNil(t, reloadedA)
	assert.False(t, reloadedA.Active)

	reloadedB, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ByID{ID: b.Id})
	require.NoError(t, err)
	require.NotNil(t, reloadedB)
	assert.True(t, reloadedB.Active)
}
