package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix 환경변수 접두사 (예: LICENSE_SERVER_PORT)
const EnvPrefix = "LICENSE"

// Config 서버 전체 설정
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Database  DatabaseConfig  `envconfig:"DATABASE"`
	Token     TokenConfig     `envconfig:"TOKEN"`
	Device    DeviceConfig    `envconfig:"DEVICE"`
	Grace     GraceConfig     `envconfig:"GRACE"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Log       LogConfig       `envconfig:"LOG"`
	Admin     AdminConfig     `envconfig:"ADMIN"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// TrustProxyHeaders X-Forwarded-For 를 클라이언트 IP 로 신뢰할지 여부
	TrustProxyHeaders bool `envconfig:"TRUST_PROXY_HEADERS" default:"false"`
}

// DatabaseConfig 데이터베이스 설정
// Driver: "sqlite" 또는 "mysql"
type DatabaseConfig struct {
	Driver string `envconfig:"DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DSN" default:"./license.db"`
}

// TokenConfig 활성화 토큰 서명 설정
type TokenConfig struct {
	Secret   string        `envconfig:"SECRET" required:"true"`
	TTL      time.Duration `envconfig:"TTL" default:"8760h"`
	AdminTTL time.Duration `envconfig:"ADMIN_TTL" default:"24h"`
}

// DeviceConfig 디바이스 해시 설정
type DeviceConfig struct {
	HashSalt string `envconfig:"HASH_SALT"`
}

// GraceConfig 오프라인 유예 기간 (클라이언트에 전달)
type GraceConfig struct {
	Days int `envconfig:"DAYS" default:"7"`
}

// RateLimitConfig 요청 제한 설정
type RateLimitConfig struct {
	Backend           string        `envconfig:"BACKEND" default:"memory"`
	RedisURL          string        `envconfig:"REDIS_URL"`
	ActivatePerWindow int           `envconfig:"ACTIVATE" default:"5"`
	ValidatePerWindow int           `envconfig:"VALIDATE" default:"60"`
	Window            time.Duration `envconfig:"WINDOW" default:"1m"`
	SweepInterval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`
}

// LogConfig 로거 설정
type LogConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Dir      string `envconfig:"DIR" default:"./logs"`
	UseColor bool   `envconfig:"COLOR" default:"true"`
	MaxSize  int64  `envconfig:"MAX_SIZE" default:"10485760"`
	MaxAge   int    `envconfig:"MAX_AGE" default:"7"`
}

// AdminConfig 최초 관리자 계정 (관리자가 한 명도 없을 때만 사용)
type AdminConfig struct {
	Username string `envconfig:"USERNAME" default:"admin"`
	Password string `envconfig:"PASSWORD"`
	Email    string `envconfig:"EMAIL" default:"admin@example.com"`
}

// Load 환경변수에서 설정을 읽고 검증합니다.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("database driver must be sqlite or mysql, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("%s_DATABASE_DSN is required", EnvPrefix)
	}

	if len(c.Token.Secret) < 32 {
		return fmt.Errorf("%s_TOKEN_SECRET must be at least 32 characters", EnvPrefix)
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if c.Grace.Days < 0 {
		return fmt.Errorf("grace days must not be negative")
	}

	switch c.RateLimit.Backend {
	case "memory":
	case "redis":
		if c.RateLimit.RedisURL == "" {
			return fmt.Errorf("%s_RATE_LIMIT_REDIS_URL is required when backend is redis", EnvPrefix)
		}
		if !strings.HasPrefix(c.RateLimit.RedisURL, "redis://") && !strings.HasPrefix(c.RateLimit.RedisURL, "rediss://") {
			return fmt.Errorf("redis URL must start with redis:// or rediss://, got %q", c.RateLimit.RedisURL)
		}
	default:
		return fmt.Errorf("rate limit backend must be memory or redis, got %q", c.RateLimit.Backend)
	}
	if c.RateLimit.ActivatePerWindow <= 0 || c.RateLimit.ValidatePerWindow <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}

	return nil
}
