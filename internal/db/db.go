package db

import (
	"embed"
	"fmt"

	"trails/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL драйвер
	_ "github.com/mattn/go-sqlite3" // SQLite драйвер
	"github.com/sirupsen/logrus"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Open подключается к SQL-базе, выбранной в конфигурации, и настраивает пул соединений.
// При cfg.SchemaInit создает недостающие таблицы.
func Open(cfg *config.Config, log logrus.FieldLogger) (*sqlx.DB, error) {
	if cfg.Driver != config.DriverPostgres && cfg.Driver != config.DriverSQLite {
		return nil, fmt.Errorf("драйвер %q не является SQL-драйвером", cfg.Driver)
	}
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.SchemaInit {
		if err := InitSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		log.WithField("driver", cfg.Driver).Info("Схема базы данных проверена")
	}
	return db, nil
}

// InitSchema создает таблицы locations и trails, если их еще нет.
// Выполняется в одной транзакции: либо обе таблицы на месте, либо ничего не изменилось.
func InitSchema(db *sqlx.DB) error {
	content, err := schemaFS.ReadFile("schema/" + db.DriverName() + ".sql")
	if err != nil {
		return fmt.Errorf("нет схемы для драйвера %s: %w", db.DriverName(), err)
	}
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("ошибка при инициации транзакции схемы: %w", err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось создать схему: %w", err)
	}
	return tx.Commit()
}
