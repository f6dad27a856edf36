package service

import (
	"context"

	"trails/internal/model"
)

// LocationStore - источник локаций только для чтения.
type LocationStore interface {
	FindAll(ctx context.Context) ([]model.Location, error)
	GetByID(ctx context.Context, id int) (*model.Location, error)
}

// LocationService содержит бизнес-логику, связанную с локациями.
type LocationService struct {
	locations LocationStore
}

// NewLocationService создает новый сервис локаций.
func NewLocationService(locations LocationStore) *LocationService {
	return &LocationService{locations: locations}
}

// ListLocations возвращает локации, к которым можно привязать тропу.
func (s *LocationService) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.locations.FindAll(ctx)
}

// GetLocation получает локацию по ее идентификатору.
func (s *LocationService) GetLocation(ctx context.Context, id int) (*model.Location, error) {
	return s.locations.GetByID(ctx, id)
}
