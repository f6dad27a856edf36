package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
	violationOther // нарушено какое-то ограничение, но драйвер не уточнил какое
)

// constraintViolation распознает нарушения ограничений в ошибках драйверов postgres и sqlite.
func constraintViolation(err error) violation {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return violationUnique
		case "foreign_key_violation":
			return violationForeignKey
		}
		if pqErr.Code.Class() == "23" {
			return violationOther
		}
		return violationNone
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return violationUnique
		case sqlite3.ErrConstraintForeignKey:
			return violationForeignKey
		}
		if liteErr.Code == sqlite3.ErrConstraint {
			return violationOther
		}
	}
	return violationNone
}
