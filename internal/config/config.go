package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverDynamoDB = "dynamodb"
)

// Config содержит все параметры процесса. Загружается один раз в точке входа
// и передается в конструкторы явно.
type Config struct {
	Driver string

	// Postgres
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite
	Path string

	// Пул соединений (postgres, sqlite3)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// SchemaInit создает таблицы, если их нет (удобно для локального запуска на sqlite).
	SchemaInit bool

	// DynamoDB
	TrailsTable    string
	LocationsTable string
	DynamoEndpoint string

	APIPort   string
	BotToken  string
	LogLevel  string
	LogFormat string
	GinMode   string
}

// Load читает конфигурацию из переменных окружения.
// Если рядом лежит .env, его значения подхватываются, но не перетирают уже заданные переменные.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("не удалось прочитать %s: %w", f, err)
		}
	}

	cfg := &Config{
		Driver:         getenv("DB_DRIVER", DriverPostgres),
		Host:           getenv("DB_HOST", "localhost"),
		Port:           getenv("DB_PORT", "5432"),
		User:           os.Getenv("DB_USER"),
		Password:       os.Getenv("DB_PASS"),
		Name:           os.Getenv("DB_NAME"),
		SSLMode:        getenv("DB_SSLMODE", "disable"),
		Path:           getenv("DB_PATH", "trails.db"),
		TrailsTable:    getenv("DYNAMO_TRAILS_TABLE", "trails"),
		LocationsTable: getenv("DYNAMO_LOCATIONS_TABLE", "locations"),
		DynamoEndpoint: os.Getenv("DYNAMO_ENDPOINT"),
		APIPort:        getenv("API_PORT", "5001"),
		BotToken:       os.Getenv("BOT_TOKEN"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
		GinMode:        getenv("GIN_MODE", "release"),
	}

	var err error
	if cfg.MaxOpenConns, err = getint("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns, err = getint("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.ConnMaxLifetime, err = getduration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SchemaInit, err = getbool("DB_SCHEMA_INIT", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Name == "" {
			return errors.New("не указано имя базы данных (DB_NAME)")
		}
	case DriverSQLite:
		if c.Path == "" {
			return errors.New("не указан путь к файлу базы (DB_PATH)")
		}
	case DriverDynamoDB:
		if c.TrailsTable == "" || c.LocationsTable == "" {
			return errors.New("не указаны таблицы DynamoDB (DYNAMO_TRAILS_TABLE, DYNAMO_LOCATIONS_TABLE)")
		}
	default:
		return fmt.Errorf("неизвестный драйвер базы данных: %q", c.Driver)
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return errors.New("размер пула соединений не может быть отрицательным")
	}
	return nil
}

// DSN возвращает строку подключения для выбранного SQL-драйвера.
func (c *Config) DSN() string {
	switch c.Driver {
	case DriverSQLite:
		// внешние ключи в sqlite по умолчанию выключены
		return "file:" + c.Path + "?_foreign_keys=on"
	default:
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
		)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("некорректное значение %s=%q: %w", key, v, err)
	}
	return n, nil
}

func getbool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("некорректное значение %s=%q: %w", key, v, err)
	}
	return b, nil
}

func getduration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("некорректное значение %s=%q: %w", key, v, err)
	}
	return d, nil
}
