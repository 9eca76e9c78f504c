package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel    string
	DebugMode   bool
	MetricsHost string

	// Outbound analysis settings.
	FetchTimeout    time.Duration
	PageSpeedAPIURL string
	PageSpeedAPIKey string // optional: the audit API works unauthenticated at lower rate limits

	// Rate limiter settings.
	RateLimitPerSec float64
	RateLimitBurst  float64
}

func NewAppConfig() (*AppConfig, error) {
	err := godotenv.Load(`config.env`)
	if err != nil {
		return nil, err
	}

	cfg := AppConfig{}
	cfg.LogLevel = os.Getenv("APP_LOG_LEVEL")
	cfg.DebugMode = os.Getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = os.Getenv("HTTP_APP_METRICS_HOST")
	cfg.PageSpeedAPIURL = os.Getenv("PAGESPEED_API_URL")
	cfg.PageSpeedAPIKey = os.Getenv("PAGESPEED_API_KEY")

	if v := os.Getenv("ANALYSIS_FETCH_TIMEOUT_DURATION"); v != "" {
		dur, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf(`ANALYSIS_FETCH_TIMEOUT_DURATION: invalid duration format: %w`, err)
		}
		cfg.FetchTimeout = dur
	} else {
		cfg.FetchTimeout = 15 * time.Second
	}

	cfg.RateLimitPerSec = 2
	cfg.RateLimitBurst = 5

	err = validate(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) error {
	var errMsg []string
	if cfg.LogLevel == "" {
		errMsg = append(errMsg, `log level is empty`)
	}

	if cfg.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty`)
	}

	if cfg.PageSpeedAPIURL == "" {
		errMsg = append(errMsg, `pagespeed api url is empty`)
	}

	if len(errMsg) != 0 {
		return fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}
	return nil
}
