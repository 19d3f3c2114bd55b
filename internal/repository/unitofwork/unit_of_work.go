package unitofwork

import (
	"context"

	"pumphouse-kiosk-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	HotspotRepository() contract.HotspotRepository
	DisplayConfigRepository() contract.DisplayConfigRepository
	OperatorRepository() contract.OperatorRepository
}
