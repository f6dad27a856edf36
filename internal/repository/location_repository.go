package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trails/internal/model"

	"github.com/jmoiron/sqlx"
)

const countLocation = "SELECT COUNT(1) FROM locations WHERE id = ?"

// LocationRepository обеспечивает доступ на чтение к таблице локаций.
type LocationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository создает новый репозиторий для локаций.
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// FindAll возвращает все локации (без фильтрации).
func (r *LocationRepository) FindAll(ctx context.Context) ([]model.Location, error) {
	locations := []model.Location{}
	err := r.db.SelectContext(ctx, &locations, "SELECT id, name, region, latitude, longitude FROM locations ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка локаций: %w", err)
	}
	return locations, nil
}

// GetByID получает локацию по ее идентификатору.
func (r *LocationRepository) GetByID(ctx context.Context, id int) (*model.Location, error) {
	var location model.Location
	query := r.db.Rebind("SELECT id, name, region, latitude, longitude FROM locations WHERE id = ?")
	err := r.db.GetContext(ctx, &location, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении локации: %w", err)
	}
	return &location, nil
}

// Exists сообщает, есть ли локация с указанным идентификатором.
func (r *LocationRepository) Exists(ctx context.Context, id int) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(countLocation), id)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке локации: %w", err)
	}
	return n > 0, nil
}
