// Package config loads runtime configuration for the sharecli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. SHARE_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server origin
//	-t int      metadata request timeout (seconds)
//	-d string   download directory
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "2.5s"
// or integer nanoseconds:
//
//	{
//	  "server_origin": "https://share.example.com",
//	  "request_timeout": "10s",
//	  "download_dir": "~/Downloads",
//	  "copy_ack_interval": "2.5s",
//	  "link_copy_ack_interval": "2s",
//	  "log_level": "info",
//	  "log_file": "/tmp/sharecli.log"
//	}
package config
