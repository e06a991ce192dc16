package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sharelink/internal/flagx"
	"github.com/dmitrijs2005/sharelink/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals are
// timex.Duration so they may be written as "2.5s" or as nanoseconds. Absent
// keys keep the value loaded before.
type JsonConfig struct {
	ServerOrigin        *string         `json:"server_origin"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DownloadDir         *string         `json:"download_dir"`
	CopyAckInterval     *timex.Duration `json:"copy_ack_interval"`
	LinkCopyAckInterval *timex.Duration `json:"link_copy_ack_interval"`
	LogLevel            *string         `json:"log_level"`
	LogFile             *string         `json:"log_file"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config in args. Without either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path, err := flagx.ConfigPath(args)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerOrigin != nil {
		cfg.ServerOrigin = *jc.ServerOrigin
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DownloadDir != nil {
		cfg.DownloadDir = *jc.DownloadDir
	}
	if jc.CopyAckInterval != nil {
		cfg.CopyAckInterval = jc.CopyAckInterval.Duration
	}
	if jc.LinkCopyAckInterval != nil {
		cfg.LinkCopyAckInterval = jc.LinkCopyAckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	return nil
}
