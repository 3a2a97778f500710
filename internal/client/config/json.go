package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "empty" so a partial file only overrides what it
// names.
type JsonConfig struct {
	ServiceURL         *string         `json:"service_url"`
	DatabasePath       *string         `json:"database_path"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	LoginDisplayName   *string         `json:"login_display_name"`
	GoogleClientID     *string         `json:"google_client_id"`
	GoogleClientSecret *string         `json:"google_client_secret"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c / -config in args.
// Without such a flag nothing happens. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServiceURL, jc.ServiceURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LoginDisplayName, jc.LoginDisplayName)
	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
