package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// 支援的資料庫驅動
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig 資料庫連線設定
type DatabaseConfig struct {
	Driver   string // sqlite | postgres
	DSN      string // sqlite: 檔案路徑；postgres: 連線字串
	LogLevel logger.LogLevel
}

// Open 依設定建立 GORM 連線（不執行遷移）
//
// SQLite：自動建立父目錄並啟用外鍵約束
func Open(cfg DatabaseConfig) (*gorm.DB, error) {
	level := cfg.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	if strings.ToLower(cfg.Driver) == DriverPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
	}

	return db, nil
}

// Migrate 建立資料表並寫入品項種子資料
//
// 順序：items → points → point_items（外鍵依賴）
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ItemGORM{}, &PointGORM{}, &PointItemGORM{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return SeedItems(db)
}

// DefaultItems 品項目錄種子資料
var DefaultItems = []ItemGORM{
	{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"},
	{ID: 2, Title: "Pilhas e Baterias", Image: "baterias.svg"},
	{ID: 3, Title: "Papéis e Papelão", Image: "papeis-papelao.svg"},
	{ID: 4, Title: "Resíduos Eletrônicos", Image: "eletronicos.svg"},
	{ID: 5, Title: "Resíduos Orgânicos", Image: "organicos.svg"},
	{ID: 6, Title: "Óleo de Cozinha", Image: "oleo.svg"},
}

// SeedItems 寫入品項種子資料；已存在的 ID 不覆寫
func SeedItems(db *gorm.DB) error {
	items := make([]ItemGORM, len(DefaultItems))
	copy(items, DefaultItems)

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}
	return nil
}

// Close 關閉底層連線池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping 檢查資料庫連線（健康檢查用）
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// sqliteParams 每個 SQLite 連線的預設參數（DSN 已指定者不覆寫）
//
// _txlock=immediate：BEGIN 時即取得寫鎖，避免兩個讀後寫事務互相等待升級而死鎖
// _busy_timeout：鎖被佔用時等待而非立即返回 SQLITE_BUSY
var sqliteParams = []struct{ key, value string }{
	{"_foreign_keys", "on"},
	{"_txlock", "immediate"},
	{"_busy_timeout", "5000"},
}

func sqliteDSN(dsn string) string {
	for _, p := range sqliteParams {
		if strings.Contains(dsn, p.key+"=") || (p.key == "_foreign_keys" && strings.Contains(dsn, "_fk=")) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.key + "=" + p.value
	}
	return dsn
}

func ensureSQLiteDir(dsn string) error {
	path := dsn
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "file:")
	if path == "" || strings.Contains(path, ":memory:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
