// Package logging 設定 log/slog 的預設 Logger
//
// 格式：
//   - text（預設）：tint 彩色輸出，適合本機開發
//   - json：slog.JSONHandler，適合容器環境收集
//
// 等級：debug, info, warn, error（預設 info）
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// 支援的輸出格式
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options 日誌設定
type Options struct {
	Level  string
	Format string
	Output io.Writer // 預設 os.Stderr
}

// Setup 建立 Logger 並設為 slog 預設值
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}

// New 依設定建立 Logger（不修改全域預設值）
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := ParseLevel(opts.Level)

	if strings.EqualFold(opts.Format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: level,
		}))
	}

	return slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
	}))
}

// ParseLevel 解析等級字串，無法辨識時返回 info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
