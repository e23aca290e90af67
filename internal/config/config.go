package config

import (
	"errors"
	"net/url"
	"os"
)

type Config struct {
	Port         string
	Env          string
	AdminWebhook string
	FilesDir     string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	return Config{
		Port: getenv("APP_PORT", "5000"),
		Env:  getenv("APP_ENV", "dev"),
		// 未配置时管理通知整体关闭。
		AdminWebhook: os.Getenv("ADMIN_WEBHOOK"),
		FilesDir:     getenv("FILES_DIR", "./files"),
	}
}

// Validate 检查配置的基本有效性。
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return errors.New("port is required")
	}
	if cfg.FilesDir == "" {
		return errors.New("files dir is required")
	}
	if cfg.AdminWebhook != "" {
		u, err := url.Parse(cfg.AdminWebhook)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("admin webhook must be an absolute url")
		}
	}
	return nil
}
