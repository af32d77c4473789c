// Package config 從環境變數（以及可選的 .env 檔案）載入設定
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 預設值
const (
	DefaultHTTPAddr      = ":3333"
	DefaultDBDriver      = "sqlite"
	DefaultDBDSN         = "./data/ecoleta.db"
	DefaultPublicBaseURL = "http://localhost:3333"
	DefaultUploadsDir    = "./uploads"
	DefaultIBGEBaseURL   = "https://servicodados.ibge.gov.br"
	DefaultAPIURL        = "http://localhost:3333"
	DefaultWizardTimeout = 10 * time.Second

	// 地理定位失敗時的預設位置（São Paulo）
	DefaultLatitude  = -23.5489
	DefaultLongitude = -46.6388
)

// Config 應用程式設定
type Config struct {
	HTTPAddr      string
	DBDriver      string
	DBDSN         string
	PublicBaseURL string
	UploadsDir    string
	LogLevel      string
	LogFormat     string

	// 註冊精靈（ecoleta register）
	IBGEBaseURL      string
	APIURL           string
	WizardTimeout    time.Duration
	DefaultLatitude  float64
	DefaultLongitude float64
}

// Load 讀取 .env（若存在）後從環境變數組裝設定
//
// .env 不會覆寫已存在的環境變數
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv 以指定的查詢函數組裝設定（測試可注入）
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		HTTPAddr:      get("HTTP_ADDR", DefaultHTTPAddr),
		DBDriver:      strings.ToLower(get("DB_DRIVER", DefaultDBDriver)),
		DBDSN:         get("DB_DSN", DefaultDBDSN),
		PublicBaseURL: strings.TrimRight(get("PUBLIC_BASE_URL", DefaultPublicBaseURL), "/"),
		UploadsDir:    get("UPLOADS_DIR", DefaultUploadsDir),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "text"),
		IBGEBaseURL:   strings.TrimRight(get("IBGE_BASE_URL", DefaultIBGEBaseURL), "/"),
		APIURL:        strings.TrimRight(get("ECOLETA_API_URL", DefaultAPIURL), "/"),
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}

	timeout, err := time.ParseDuration(get("WIZARD_TIMEOUT", DefaultWizardTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("invalid WIZARD_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("WIZARD_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.WizardTimeout = timeout

	if cfg.DefaultLatitude, err = parseFloat(get("DEFAULT_LATITUDE", ""), DefaultLatitude); err != nil {
		return Config{}, fmt.Errorf("invalid DEFAULT_LATITUDE: %w", err)
	}
	if cfg.DefaultLongitude, err = parseFloat(get("DEFAULT_LONGITUDE", ""), DefaultLongitude); err != nil {
		return Config{}, fmt.Errorf("invalid DEFAULT_LONGITUDE: %w", err)
	}

	return cfg, nil
}

func parseFloat(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
