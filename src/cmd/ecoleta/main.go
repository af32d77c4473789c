// ecoleta 收集據點 API 伺服器與註冊精靈
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/config"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/logging"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:           "ecoleta",
	Short:         "Waste collection point registry",
	Long:          `Ecoleta serves the collection point API and registers new points through the registration wizard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json (overrides LOG_FORMAT)")

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newRegisterCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig 讀取設定並初始化預設 Logger；旗標優先於環境變數
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	logger := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	return cfg, logger, nil
}

// gormLogLevel debug 時輸出 SQL，其餘只記錄警告
func gormLogLevel(level string) gormlogger.LogLevel {
	if logging.ParseLevel(level) == slog.LevelDebug {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// closeDB 關閉資料庫連線，失敗只記錄日誌
func closeDB(db *gorm.DB, logger *slog.Logger) {
	if err := persistence.Close(db); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
