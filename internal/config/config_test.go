package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_NAME", "DB_SSLMODE",
		"DB_PATH", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"DB_SCHEMA_INIT", "DYNAMO_TRAILS_TABLE", "DYNAMO_LOCATIONS_TABLE", "DYNAMO_ENDPOINT", "API_PORT",
		"BOT_TOKEN", "LOG_LEVEL", "LOG_FORMAT", "GIN_MODE",
	} {
		t.Setenv(k, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "trails")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "5001", cfg.APIPort)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.False(t, cfg.SchemaInit)
	assert.Equal(t,
		"host=localhost port=5432 user= password= dbname=trails sslmode=disable",
		cfg.DSN())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DB_DRIVER")
	os.Unsetenv("DB_PATH")
	os.Unsetenv("DB_SCHEMA_INIT")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=sqlite3\nDB_PATH=/tmp/x.db\nDB_SCHEMA_INIT=true\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("DB_PATH")
		os.Unsetenv("DB_SCHEMA_INIT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.True(t, cfg.SchemaInit)
	assert.Equal(t, "file:/tmp/x.db?_foreign_keys=on", cfg.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"postgres without name", map[string]string{"DB_DRIVER": "postgres"}},
		{"bad pool size", map[string]string{"DB_NAME": "x", "DB_MAX_OPEN_CONNS": "many"}},
		{"negative pool size", map[string]string{"DB_NAME": "x", "DB_MAX_IDLE_CONNS": "-1"}},
		{"bad lifetime", map[string]string{"DB_NAME": "x", "DB_CONN_MAX_LIFETIME": "soon"}},
		{"bad bool", map[string]string{"DB_NAME": "x", "DB_SCHEMA_INIT": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}
