package contract

import (
	"context"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HotspotRepository interface {
	Create(ctx context.Context, hotspot *entity.Hotspot) error
	Update(ctx context.Context, hotspot *entity.Hotspot) error
	// Delete is a hard delete; there is no recovery path.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Hotspot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Hotspot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
