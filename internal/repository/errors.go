package repository

import "errors"

var (
	// ErrNotFound возвращается, если запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("запись не найдена")

	// ErrDuplicateTrailID возвращается при создании тропы с уже занятым TrailID.
	ErrDuplicateTrailID = errors.New("тропа с таким TrailID уже существует")

	// ErrUnknownLocation возвращается, если LocationID не ссылается на существующую локацию.
	ErrUnknownLocation = errors.New("локация не существует")
)
