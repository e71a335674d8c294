// Package config 從環境變數（可選 .env）載入服務設定
//
// 變數以 USERS_ 為前綴，第一個底線之後的部分為欄位名稱：
// USERS_DATABASE_HOST -> database.host、USERS_REDIS_TTL -> redis.ttl
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "USERS_"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Worker   WorkerConfig   `koanf:"worker"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port      int     `koanf:"port" validate:"min=1,max=65535"`
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// DatabaseConfig 若設定 URL 則忽略其他連線欄位
type DatabaseConfig struct {
	URL         string `koanf:"url"`
	Host        string `koanf:"host" validate:"required_without=URL"`
	Port        int    `koanf:"port" validate:"min=0,max=65535"`
	User        string `koanf:"user" validate:"required_without=URL"`
	Password    string `koanf:"password"`
	Name        string `koanf:"name" validate:"required_without=URL"`
	SSLMode     string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns    int32  `koanf:"max_conns" validate:"min=0"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// RedisConfig 的 Addr 為空時不啟用快取
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"min=0"`
	TTL      time.Duration `koanf:"ttl" validate:"min=0"`
}

type WorkerConfig struct {
	Count int `koanf:"count" validate:"min=1"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Default 回傳所有欄位的預設值
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080, RateBurst: 10},
		Database: DatabaseConfig{
			Host:        "localhost",
			Port:        5432,
			User:        "postgres",
			Name:        "users",
			SSLMode:     "disable",
			MaxConns:    4,
			AutoMigrate: true,
		},
		Redis:  RedisConfig{TTL: 5 * time.Minute},
		Worker: WorkerConfig{Count: 1},
		Log:    LogConfig{Level: "info"},
	}
}

// loadDotenv 測試可替換
var loadDotenv = func() error { return godotenv.Load() }

// Load 讀取 .env（不存在則略過）與 USERS_* 環境變數並驗證
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey: USERS_DATABASE_SSL_MODE -> database.ssl_mode
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Addr 回傳 HTTP 監聽位址
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// DSN 回傳 PostgreSQL 連線字串
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// CacheEnabled 表示是否要連線 Redis
func (r RedisConfig) CacheEnabled() bool {
	return r.Addr != ""
}
