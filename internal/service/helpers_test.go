package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pumphouse-kiosk-be/internal/entity"
	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/repository/contract"
	"pumphouse-kiosk-be/internal/repository/specification"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. Specifications are GORM
// clauses, so the fakes interpret just the ones the services actually use:
// ByID, ActiveOnly and BySortOrder.

type fakeHotspotRepo struct {
	mu         sync.Mutex
	hotspots   map[uuid.UUID]*entity.Hotspot
	updates    int
	failUpdate bool
}

func newFakeHotspotRepo() *fakeHotspotRepo {
	return &fakeHotspotRepo{hotspots: make(map[uuid.UUID]*entity.Hotspot)}
}

func (r *fakeHotspotRepo) Create(ctx context.Context, hotspot *entity.Hotspot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *hotspot
	r.hotspots[hotspot.Id] = &copied
	return nil
}

func (r *fakeHotspotRepo) Update(ctx context.Context, hotspot *entity.Hotspot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return fmt.Errorf("connection refused")
	}
	r.updates++
	copied := *hotspot
	r.hotspots[hotspot.Id] = &copied
	return nil
}

func (r *fakeHotspotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hotspots, id)
	return nil
}

func (r *fakeHotspotRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Hotspot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			if h, found := r.hotspots[byID.ID]; found {
				copied := *h
				return &copied, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeHotspotRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Hotspot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activeOnly := false
	for _, s := range specs {
		if _, ok := s.(specification.ActiveOnly); ok {
			activeOnly = true
		}
	}

	var result []*entity.Hotspot
	for _, h := range r.hotspots {
		if activeOnly && !h.Active {
			continue
		}
		copied := *h
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (r *fakeHotspotRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.hotspots)), nil
}

func (r *fakeHotspotRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

type fakeConfigRepo struct {
	mu      sync.Mutex
	configs map[uuid.UUID]*entity.DisplayConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[uuid.UUID]*entity.DisplayConfig)}
}

func (r *fakeConfigRepo) Create(ctx context.Context, cfg *entity.DisplayConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cfg
	r.configs[cfg.Id] = &copied
	return nil
}

func (r *fakeConfigRepo) Update(ctx context.Context, cfg *entity.DisplayConfig) error {
	return r.Create(ctx, cfg)
}

func (r *fakeConfigRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.configs, id)
	return nil
}

func (r *fakeConfigRepo) DeactivateAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.configs {
		c.Active = false
	}
	return nil
}

func (r *fakeConfigRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DisplayConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if c, found := r.configs[spec.ID]; found {
				copied := *c
				return &copied, nil
			}
			return nil, nil
		case specification.ActiveOnly:
			for _, c := range r.configs {
				if c.Active {
					copied := *c
					return &copied, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeConfigRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DisplayConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.DisplayConfig
	for _, c := range r.configs {
		copied := *c
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeConfigRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.configs)), nil
}

type fakeUnitOfWork struct {
	hotspots *fakeHotspotRepo
	configs  *fakeConfigRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) HotspotRepository() contract.HotspotRepository {
	return u.hotspots
}

func (u *fakeUnitOfWork) DisplayConfigRepository() contract.DisplayConfigRepository {
	return u.configs
}

func (u *fakeUnitOfWork) OperatorRepository() contract.OperatorRepository {
	return nil
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{
		hotspots: newFakeHotspotRepo(),
		configs:  newFakeConfigRepo(),
	}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	mu        sync.Mutex
	published []events.Event
}

func (p *fakePublisher) Publish(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
}

func (p *fakePublisher) typesSeen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.published))
	for _, e := range p.published {
		out = append(out, e.EventType())
	}
	return out
}

func (p *fakePublisher) countOf(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.published {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
func (nopLogger) Sync() error                                    { return nil }

type nopSink struct{}

func (nopSink) PushPose(_ camera.Pose, _ bool) {}
