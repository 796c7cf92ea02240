package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = "8080"
	defaultDatabase    = "habitlog.db"
	defaultSecret      = "habitlog-dev-secret"
	defaultGinMode     = "release"
	defaultLanguage    = "en"
	defaultHeatmapDays = 90
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string `yaml:"listen_addr"`
	Port            string `yaml:"port"`
	DatabasePath    string `yaml:"database_path"`
	SessionSecret   string `yaml:"session_secret"`
	GinMode         string `yaml:"gin_mode"`
	AdminUserName   string `yaml:"admin_user_name"`
	AdminPassword   string `yaml:"admin_password"`
	DefaultLanguage string `yaml:"default_language"`
	HeatmapDays     int    `yaml:"heatmap_days"`
}

// AuthEnabled 仅在配置了管理员账号时开启登录保护
func (c AppConfig) AuthEnabled() bool {
	return c.AdminUserName != "" && c.AdminPassword != ""
}

// Load 先读取 HABITLOG_CONFIG 指定的 YAML 文件（可选），再用环境变量覆盖，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig
	if path := strings.TrimSpace(os.Getenv("HABITLOG_CONFIG")); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		cfg = fileCfg
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.ListenAddr = envOr("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabasePath = envOr("DATABASE_PATH", cfg.DatabasePath)
	cfg.SessionSecret = envOr("SESSION_SECRET", cfg.SessionSecret)
	cfg.GinMode = envOr("GIN_MODE", cfg.GinMode)
	cfg.AdminUserName = envOr("ADMIN_USER_NAME", cfg.AdminUserName)
	cfg.AdminPassword = envOr("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.DefaultLanguage = envOr("DEFAULT_LANGUAGE", cfg.DefaultLanguage)

	if raw := strings.TrimSpace(os.Getenv("HEATMAP_DAYS")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return AppConfig{}, fmt.Errorf("invalid HEATMAP_DAYS %q", raw)
		}
		cfg.HeatmapDays = days
	}

	return withDefaults(cfg), nil
}

// LoadFile 解析 YAML 配置文件；文件不存在时返回空配置。
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func withDefaults(cfg AppConfig) AppConfig {
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabase
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = defaultSecret
	}
	if cfg.GinMode == "" {
		cfg.GinMode = defaultGinMode
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = defaultLanguage
	}
	if cfg.HeatmapDays <= 0 {
		cfg.HeatmapDays = defaultHeatmapDays
	}
	return cfg
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return strings.TrimSpace(fallback)
}
