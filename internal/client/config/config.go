package config

import "time"

// Config holds runtime settings for the shopadmin CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host[:port] of the backend REST API.
//   - DBPath: SQLite file that keeps the persisted session.
//   - SessionCheckInterval: how often an authenticated session is re-validated
//     against the backend; zero disables the background check.
//   - PageSize: rows per page on list screens.
//   - LogLevel / LogFormat: see package logging.
type Config struct {
	ServerBaseURL        string
	DBPath               string
	SessionCheckInterval time.Duration
	PageSize             int
	LogLevel             string
	LogFormat            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.DBPath = "shopadmin.db"
	c.SessionCheckInterval = 5 * time.Minute
	c.PageSize = 5
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
