package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trails/internal/model"

	"github.com/jmoiron/sqlx"
)

const trailColumns = "trail_id, title, description, duration, elevation, route_type, length, location_id"

const insertTrail = `INSERT INTO trails (trail_id, title, description, duration, elevation, route_type, length, location_id)
	VALUES (:trail_id, :title, :description, :duration, :elevation, :route_type, :length, :location_id)`

const updateTrail = `UPDATE trails
	SET title = :title, description = :description, duration = :duration, elevation = :elevation,
	    route_type = :route_type, length = :length, location_id = :location_id
	WHERE trail_id = :trail_id`

// TrailRepository обеспечивает доступ к данным троп в базе данных.
//
// Уникальность TrailID и ссылка на локацию проверяются ограничениями самой базы:
// запись выполняется сразу, а ошибка ограничения переводится в ErrDuplicateTrailID
// или ErrUnknownLocation.
type TrailRepository struct {
	db        *sqlx.DB
	locations *LocationRepository
}

// NewTrailRepository создает новый репозиторий для троп.
func NewTrailRepository(db *sqlx.DB) *TrailRepository {
	return &TrailRepository{db: db, locations: NewLocationRepository(db)}
}

// List возвращает все тропы в том порядке, в котором их отдает база.
func (r *TrailRepository) List(ctx context.Context) ([]model.Trail, error) {
	trails := []model.Trail{}
	if err := r.db.SelectContext(ctx, &trails, "SELECT "+trailColumns+" FROM trails"); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка троп: %w", err)
	}
	return trails, nil
}

// GetByID возвращает тропу по идентификатору или ErrNotFound.
func (r *TrailRepository) GetByID(ctx context.Context, id int) (*model.Trail, error) {
	var trail model.Trail
	query := r.db.Rebind("SELECT " + trailColumns + " FROM trails WHERE trail_id = ?")
	err := r.db.GetContext(ctx, &trail, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тропы: %w", err)
	}
	return &trail, nil
}

// IDAvailable сообщает, свободен ли TrailID.
func (r *TrailRepository) IDAvailable(ctx context.Context, id int) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind("SELECT COUNT(1) FROM trails WHERE trail_id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке TrailID: %w", err)
	}
	return n == 0, nil
}

// LocationExists сообщает, существует ли локация, на которую может ссылаться тропа.
func (r *TrailRepository) LocationExists(ctx context.Context, id int) (bool, error) {
	return r.locations.Exists(ctx, id)
}

// Create добавляет тропу целиком. Вставка выполняется в транзакции:
// при любой ошибке транзакция откатывается и строка не появляется.
func (r *TrailRepository) Create(ctx context.Context, trail *model.Trail) error {
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, insertTrail, trail)
		return err
	})
	if err != nil {
		return r.classifyWriteError(ctx, trail, err, true, "не удалось создать тропу")
	}
	return nil
}

// Update полностью заменяет поля тропы с указанным идентификатором.
// TrailID из тела игнорируется. Поля, не переданные клиентом, перезаписываются пустыми значениями.
// Возвращает ErrNotFound, если тропы нет, и ErrUnknownLocation, если нет локации
// (даже когда нет и самой тропы).
func (r *TrailRepository) Update(ctx context.Context, id int, trail *model.Trail) error {
	row := *trail
	row.ID = id
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, updateTrail, &row)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// ни одна строка не изменилась, поэтому внешний ключ не проверялся
			var found int
			if err := tx.GetContext(ctx, &found, tx.Rebind(countLocation), row.LocationID); err != nil {
				return err
			}
			if found == 0 {
				return ErrUnknownLocation
			}
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnknownLocation) {
		return err
	}
	if err != nil {
		return r.classifyWriteError(ctx, &row, err, false, "не удалось обновить тропу")
	}
	return nil
}

// Delete удаляет тропу. Отсутствие тропы ошибкой не считается.
func (r *TrailRepository) Delete(ctx context.Context, id int) error {
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM trails WHERE trail_id = ?"), id)
		return err
	})
	if err != nil {
		return fmt.Errorf("не удалось удалить тропу: %w", err)
	}
	return nil
}

// inTx выполняет fn в транзакции. К моменту возврата транзакция либо зафиксирована,
// либо откачена, и соединение возвращено в пул.
func (r *TrailRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// classifyWriteError переводит ошибку записи в понятную клиенту.
// Если драйвер не уточнил, какое ограничение нарушено, причина выясняется
// повторными точечными запросами; транзакция к этому моменту уже откачена.
func (r *TrailRepository) classifyWriteError(ctx context.Context, trail *model.Trail, err error, checkID bool, msg string) error {
	switch constraintViolation(err) {
	case violationUnique:
		return ErrDuplicateTrailID
	case violationForeignKey:
		return ErrUnknownLocation
	case violationOther:
		if checkID {
			if ok, lookupErr := r.IDAvailable(ctx, trail.ID); lookupErr == nil && !ok {
				return ErrDuplicateTrailID
			}
		}
		if ok, lookupErr := r.LocationExists(ctx, trail.LocationID); lookupErr == nil && !ok {
			return ErrUnknownLocation
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
