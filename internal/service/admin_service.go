package service

import (
	"context"

	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/kiosk"
)

type IAdminService interface {
	Overview(ctx context.Context) (*dto.AdminOverviewResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	monitor    *kiosk.Monitor
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger, monitor *kiosk.Monitor) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     sysLogger,
		monitor:    monitor,
	}
}

func (s *adminService) Overview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hotspotCount, err := uow.HotspotRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	configCount, err := uow.DisplayConfigRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.AdminOverviewResponse{
		HotspotCount:  hotspotCount,
		ConfigCount:   configCount,
		ActivityState: string(s.monitor.State()),
	}

	active, err := uow.DisplayConfigRepository().FindOne(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if active != nil {
		resp.ActiveConfig = active.Name
	}
	return resp, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	return s.logger.GetLogById(id)
}
