package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ClientEnvPrefix 클라이언트 환경변수 접두사 (예: LICENSE_CLIENT_SERVER_URL)
const ClientEnvPrefix = "LICENSE_CLIENT"

// ClientConfig 디바이스 쪽 라이선스 클라이언트 설정
type ClientConfig struct {
	ServerURL     string        `envconfig:"SERVER_URL" default:"http://localhost:8080"`
	StatePath     string        `envconfig:"STATE_PATH" default:"./license_state.json"`
	GraceDays     int           `envconfig:"GRACE_DAYS" default:"7"`
	AppVersion    string        `envconfig:"APP_VERSION" default:"1.0.0"`
	CheckInterval time.Duration `envconfig:"CHECK_INTERVAL" default:"1h"`
	Timeout       time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// LoadClient 환경변수에서 클라이언트 설정을 읽습니다.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(ClientEnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load client config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate 플래그로 값을 덮어쓴 뒤에도 다시 호출할 수 있습니다.
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server URL must be an absolute http(s) URL, got %q", c.ServerURL)
	}
	if c.StatePath == "" {
		return fmt.Errorf("%s_STATE_PATH is required", ClientEnvPrefix)
	}
	if c.GraceDays <= 0 {
		return fmt.Errorf("grace days must be positive")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("check interval must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
