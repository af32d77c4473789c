package persistence

import (
	"path/filepath"
	"testing"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite 資料庫（t.TempDir 中的獨立檔案）
//
// 每個測試使用獨立的資料庫檔案；已執行遷移與品項種子資料
//
// 返回：
// - *gorm.DB: GORM 資料庫連接
// - cleanup func(): 清理函數，測試結束時調用
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := Open(DatabaseConfig{
		Driver:   DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "ecoleta-test.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, Migrate(db), "failed to migrate test database")

	cleanup := func() {
		_ = Close(db)
	}

	return db, cleanup
}

// newTestPoint 創建測試用的據點聚合
func newTestPoint(t *testing.T, name, city, uf string, itemIDs ...int64) *point.Point {
	t.Helper()

	coords, err := point.NewCoordinates(-23.5, -46.6)
	require.NoError(t, err)
	state, err := point.NewUF(uf)
	require.NoError(t, err)
	items, err := point.ItemSetFromInt64s(itemIDs)
	require.NoError(t, err)

	p, err := point.NewPoint(point.NewPointParams{
		Name:        name,
		Email:       "a@b.com",
		WhatsApp:    "1",
		Coordinates: coords,
		City:        city,
		UF:          state,
		Items:       items,
	})
	require.NoError(t, err)
	return p
}
