package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "NOTEKEEPER_"

// parseEnv overlays cfg with NOTEKEEPER_* variables. Unset variables leave
// the current value alone; malformed ones (e.g. a bad duration) panic.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
