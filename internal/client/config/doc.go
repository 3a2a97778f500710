// Package config loads runtime configuration for the notekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. NOTEKEEPER_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the identity and note services
//	-d string   path to the SQLite session database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations are timex.Duration, so either "30s" or integer nanoseconds:
//
//	{
//	  "service_url": "http://localhost:5000",
//	  "database_path": "notekeeper.db",
//	  "request_timeout": "30s",
//	  "login_display_name": "User",
//	  "google_client_id": "",
//	  "google_client_secret": "",
//	  "log_level": "info"
//	}
package config
