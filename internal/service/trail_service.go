package service

import (
	"context"

	"trails/internal/model"
)

// TrailStore - хранилище троп (SQL или DynamoDB).
type TrailStore interface {
	List(ctx context.Context) ([]model.Trail, error)
	GetByID(ctx context.Context, id int) (*model.Trail, error)
	Create(ctx context.Context, trail *model.Trail) error
	Update(ctx context.Context, id int, trail *model.Trail) error
	Delete(ctx context.Context, id int) error
}

// TrailService содержит бизнес-логику, связанную с тропами.
type TrailService struct {
	trails TrailStore
}

// NewTrailService создает новый сервис для работы с тропами.
func NewTrailService(trails TrailStore) *TrailService {
	return &TrailService{trails: trails}
}

// ListTrails возвращает все тропы.
func (s *TrailService) ListTrails(ctx context.Context) ([]model.Trail, error) {
	return s.trails.List(ctx)
}

// GetTrail возвращает тропу по идентификатору.
func (s *TrailService) GetTrail(ctx context.Context, id int) (*model.Trail, error) {
	return s.trails.GetByID(ctx, id)
}

// CreateTrail создает тропу. Любой целый TrailID допустим: уникальность и
// существование локации проверяет хранилище в момент записи.
func (s *TrailService) CreateTrail(ctx context.Context, trail *model.Trail) error {
	return s.trails.Create(ctx, trail)
}

// UpdateTrail полностью заменяет тропу с идентификатором id.
func (s *TrailService) UpdateTrail(ctx context.Context, id int, trail *model.Trail) error {
	return s.trails.Update(ctx, id, trail)
}

// DeleteTrail удаляет тропу.
func (s *TrailService) DeleteTrail(ctx context.Context, id int) error {
	return s.trails.Delete(ctx, id)
}
