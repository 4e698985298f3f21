package config

import "time"

// Config holds runtime settings for the expense tracker CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, without the /api/v1 prefix.
//   - RequestTimeout: budget for a single HTTP request.
//   - DatabasePath: SQLite file holding the session token.
//   - ExportDir: directory (relative to cwd) that receives CSV exports.
//   - LogLevel: minimum level for diagnostics written to stderr.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	ExportDir      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10000 * time.Millisecond
	c.DatabasePath = "expensetracker.db"
	c.ExportDir = "exports"
	c.LogLevel = "warn"
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
