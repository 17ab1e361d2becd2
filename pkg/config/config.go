package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL      string        `env:"BACKOFFICE_BASE_URL"`
	WSURL        string        `env:"BACKOFFICE_WS_URL"`
	Tenant       string        `env:"BACKOFFICE_TENANT"`
	AccessToken  string        `env:"BACKOFFICE_ACCESS_TOKEN"`
	RefreshToken string        `env:"BACKOFFICE_REFRESH_TOKEN"`
	HTTPTimeout  time.Duration `env:"BACKOFFICE_HTTP_TIMEOUT" envDefault:"10s"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty    bool          `env:"LOG_PRETTY"`
	MetricsAddr  string        `env:"METRICS_ADDR"`
	Watch        WatchConfig
}

type WatchConfig struct {
	KeepAliveInterval    time.Duration `env:"WATCH_KEEPALIVE_INTERVAL" envDefault:"30s"`
	ReconnectBaseDelay   time.Duration `env:"WATCH_RECONNECT_BASE_DELAY" envDefault:"1s"`
	ReconnectMaxDelay    time.Duration `env:"WATCH_RECONNECT_MAX_DELAY" envDefault:"30s"`
	MaxReconnectAttempts int           `env:"WATCH_MAX_RECONNECT_ATTEMPTS" envDefault:"5"`
	PollInterval         time.Duration `env:"WATCH_POLL_INTERVAL" envDefault:"60s"`
	Capacity             int           `env:"WATCH_CAPACITY" envDefault:"200"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	if c.BaseURL == "" {
		return Config{}, errors.New("BACKOFFICE_BASE_URL is required")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.WSURL == "" {
		ws, err := DeriveWSURL(c.BaseURL)
		if err != nil {
			return Config{}, fmt.Errorf("derive websocket url: %w", err)
		}
		c.WSURL = ws
	}

	return c, nil
}

// DeriveWSURL maps the REST base URL onto the notification stream endpoint.
func DeriveWSURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/ws/notifications"

	return u.String(), nil
}
