package contract

import (
	"context"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DisplayConfigRepository interface {
	Create(ctx context.Context, config *entity.DisplayConfig) error
	Update(ctx context.Context, config *entity.DisplayConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeactivateAll clears the active flag everywhere; activation then sets
	// it on exactly one row inside the same unit of work.
	DeactivateAll(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DisplayConfig, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DisplayConfig, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
