package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/flagx"
	"github.com/dmitrijs2005/dndadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration, so "20s" and integer nanoseconds both work. Fields
// left out of the file keep their previous values.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	HashEncoding   string         `json:"hash_encoding"`
	RoleOptions    []string       `json:"role_options"`
	DataDir        string         `json:"data_dir"`
	TokenSealer    string         `json:"token_sealer"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config in args, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
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

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	setString(&cfg.HashEncoding, jc.HashEncoding)
	if len(jc.RoleOptions) > 0 {
		cfg.RoleOptions = jc.RoleOptions
	}
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.TokenSealer, jc.TokenSealer)
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
