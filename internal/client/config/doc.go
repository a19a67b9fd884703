// Package config loads runtime configuration for the shopadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-d string   path of the local SQLite file
//	-i int      session re-validation interval (seconds, 0 disables)
//	-p int      rows per page on list screens
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text, json, zerolog
//
// # JSON schema
//
// Intervals use timex.Duration, so they may be strings like "5m" or integer
// nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "server_base_url": "https://api.example.com",
//	  "db_path": "/var/lib/shopadmin/session.db",
//	  "session_check_interval": "5m",
//	  "page_size": 10,
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
