package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_PASSWORD", "")
		t.Setenv("DB_NAME", "")
		t.Setenv("DB_SSLMODE", "")

		config := LoadConfig()
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_NAME", "creator_pulse_test")
		t.Setenv("DB_PORT", "")

		config := LoadConfig()
		assert.Equal(t, "db.internal", config.Host)
		assert.Equal(t, "creator_pulse_test", config.DBName)
		assert.Equal(t, "5432", config.Port)
	})
}

func TestConfigDSN(t *testing.T) {
	t.Run("omits empty password", func(t *testing.T) {
		config := DefaultConfig()
		assert.Equal(t,
			"host=localhost port=5432 user=postgres dbname=creator_pulse sslmode=disable",
			config.DSN())
	})

	t.Run("includes password when set", func(t *testing.T) {
		config := DefaultConfig()
		config.Password = "hunter2"
		assert.Contains(t, config.DSN(), "password=hunter2")
	})
}
