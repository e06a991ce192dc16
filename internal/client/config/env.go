package config

import (
	env "github.com/caarlos0/env/v9"
)

// EnvPrefix is prepended to every variable name in the Config env tags.
const EnvPrefix = "SHARE_"

// parseEnv overlays cfg with SHARE_* environment variables. Variables that
// are not set leave the current value alone. A nil environ reads the process
// environment.
//
// Recognized variables:
//
//	SHARE_API_BASE_URL      server origin
//	SHARE_REQUEST_TIMEOUT   metadata timeout, e.g. "5s"
//	SHARE_DOWNLOAD_DIR      download directory
//	SHARE_LOG_LEVEL         log level
//	SHARE_LOG_FILE          log file path
func parseEnv(cfg *Config, environ map[string]string) error {
	return env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
}
