package config_test

import (
	"testing"
	"time"

	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, 100, cfg.Feed.Size)
	assert.Equal(t, "0 0 6 1 * *", cfg.Reports.Cron)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeoutDuration())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.App.Port)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	db := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", db.ConnectionString())
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, (&config.AppConfig{}).Location())
	assert.Equal(t, time.UTC, (&config.AppConfig{Timezone: "Not/AZone"}).Location())
}
