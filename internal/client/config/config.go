package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the notekeeper CLI.
//
// Fields:
//   - ServiceURL: base URL of the identity and note services.
//   - DatabasePath: SQLite file holding the persisted session token.
//   - RequestTimeout: upper bound for a single outbound HTTP request.
//   - LoginDisplayName: name sent with OTP requests issued from the login view.
//   - GoogleClientID / GoogleClientSecret: enable the device-flow Google sign-in.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServiceURL         string        `env:"SERVICE_URL"`
	DatabasePath       string        `env:"DATABASE_PATH"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"`
	LoginDisplayName   string        `env:"LOGIN_DISPLAY_NAME"`
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
	LogLevel           string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceURL = "http://localhost:5000"
	c.DatabasePath = "notekeeper.db"
	c.RequestTimeout = 30 * time.Second
	c.LoginDisplayName = "User"
	c.LogLevel = "info"
}

// GoogleEnabled reports whether the device-flow Google sign-in is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
