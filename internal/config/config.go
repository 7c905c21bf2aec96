package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	APIBaseURL  string        // リモートAPIのベースURL（.../wp-json/dw/v1）
	StoragePath string        // ローカル保存のsqliteファイル
	SyncWindow  time.Duration // カート同期のデバウンス幅
	HTTPTimeout time.Duration // トランスポートのタイムアウト
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		StoragePath: os.Getenv("STORAGE_PATH"),
	}

	//必須チェック
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.StoragePath == "" {
		return Config{}, fmt.Errorf("STORAGE_PATH is required")
	}

	syncMs, err := atoiDefault("SYNC_DEBOUNCE_MS", 1500)
	if err != nil {
		return Config{}, err
	}
	cfg.SyncWindow = time.Duration(syncMs) * time.Millisecond

	timeoutMs, err := atoiDefault("HTTP_TIMEOUT_MS", 10000)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTPTimeout = time.Duration(timeoutMs) * time.Millisecond

	return cfg, nil
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
