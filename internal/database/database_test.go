package database

import (
	"path/filepath"
	"testing"

	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "backoffice.db?_foreign_keys=on", SQLiteDSN("backoffice.db"))
	assert.Equal(t, "file:backoffice.db?cache=shared&_foreign_keys=on", SQLiteDSN("file:backoffice.db?cache=shared"))
}

func TestNewDatabase_SQLiteEnforcesForeignKeys(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "backoffice.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}

	db, err := NewDatabase(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}
