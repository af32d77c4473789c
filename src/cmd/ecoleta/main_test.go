package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestCloseDB_ClosesPool(t *testing.T) {
	db, err := persistence.Open(persistence.DatabaseConfig{
		Driver:   persistence.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "close.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	closeDB(db, logger)

	assert.Error(t, persistence.Ping(context.Background(), db), "pool should be closed")
	assert.Empty(t, buf.String())
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel(""))
}
