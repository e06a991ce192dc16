package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the sharecli client.
//
// Fields:
//   - ServerOrigin: scheme://host[:port] of the sharing backend.
//   - RequestTimeout: upper bound for metadata lookups; 0 disables it.
//   - DownloadDir: where downloaded content is saved.
//   - CopyAckInterval: how long "copied" stays visible after copying a snippet.
//   - LinkCopyAckInterval: the same for a copied view link.
//   - LogLevel: debug, info, warn or error.
//   - LogFile: rotating log file; empty means stderr.
type Config struct {
	ServerOrigin        string        `env:"API_BASE_URL"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	DownloadDir         string        `env:"DOWNLOAD_DIR"`
	CopyAckInterval     time.Duration
	LinkCopyAckInterval time.Duration
	LogLevel            string `env:"LOG_LEVEL"`
	LogFile             string `env:"LOG_FILE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerOrigin = "http://localhost:8080"
	c.RequestTimeout = 0
	c.DownloadDir = "."
	c.CopyAckInterval = 2500 * time.Millisecond
	c.LinkCopyAckInterval = 2 * time.Second
	c.LogLevel = "warn"
	c.LogFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
