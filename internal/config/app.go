package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// history caps seen across client builds ranged 10..50
const maxHistoryLimit = 50

type AppConfig struct {
	RuntimePath string `env:"GRACE_RUNTIME_PATH" envDefault:".graceguide"`

	// Answer service
	BaseURL        string        `env:"GRACE_API_URL" envDefault:"https://graceguide.ai"`
	RequestTimeout time.Duration `env:"GRACE_REQUEST_TIMEOUT" envDefault:"120s"`

	HistoryLimit int `env:"GRACE_HISTORY_LIMIT" envDefault:"10"`

	// Subscribe prompt gating
	NagThreshold int           `env:"GRACE_NAG_THRESHOLD" envDefault:"5"`
	DeferSpan    int           `env:"GRACE_DEFER_SPAN" envDefault:"10"`
	SessionIdle  time.Duration `env:"GRACE_SESSION_IDLE" envDefault:"30m"`

	// Transport Flags
	EnableTelegram bool `env:"GRACE_ENABLE_TELEGRAM" envDefault:"false"`
}

// ParseAppConfig reads and validates the GRACE_* environment.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c AppConfig) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("GRACE_API_URL cannot be empty"))
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > maxHistoryLimit {
		errs = append(errs, fmt.Errorf("GRACE_HISTORY_LIMIT must be within 1..%d, got %d", maxHistoryLimit, c.HistoryLimit))
	}
	if c.NagThreshold < 1 {
		errs = append(errs, fmt.Errorf("GRACE_NAG_THRESHOLD must be > 0, got %d", c.NagThreshold))
	}
	if c.DeferSpan < 1 {
		errs = append(errs, fmt.Errorf("GRACE_DEFER_SPAN must be > 0, got %d", c.DeferSpan))
	}
	if c.SessionIdle <= 0 {
		errs = append(errs, errors.New("GRACE_SESSION_IDLE must be positive"))
	}
	return errors.Join(errs...)
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "grace.db")
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "grace.log")
}

func (c AppConfig) GetShareDir() string {
	return filepath.Join(c.RuntimePath, "shares")
}

func (c AppConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c AppConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

func (c AppConfig) GetNagThreshold() int {
	return c.NagThreshold
}

func (c AppConfig) GetDeferSpan() int {
	return c.DeferSpan
}

func (c AppConfig) GetSessionIdle() time.Duration {
	return c.SessionIdle
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
