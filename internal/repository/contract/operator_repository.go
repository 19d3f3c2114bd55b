package contract

import (
	"context"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/repository/specification"
)

type OperatorRepository interface {
	Create(ctx context.Context, operator *entity.Operator) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Operator, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
