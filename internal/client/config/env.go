package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfig is the environment overlay, read with cleanenv. Unset
// variables leave the corresponding Config field alone.
type EnvConfig struct {
	ServerBaseURL  string        `env:"DNDADMIN_SERVER_URL" env-description:"admin API base url"`
	RequestTimeout time.Duration `env:"DNDADMIN_REQUEST_TIMEOUT" env-description:"per-request timeout"`
	HashEncoding   string        `env:"DNDADMIN_HASH_ENCODING" env-description:"client hash encoding: hex or base64"`
	RoleOptions    []string      `env:"DNDADMIN_ROLE_OPTIONS" env-separator:"," env-description:"comma separated assignable roles"`
	DataDir        string        `env:"DNDADMIN_DATA_DIR" env-description:"local data directory"`
	TokenSealer    string        `env:"DNDADMIN_TOKEN_SEALER" env-description:"token sealer: aesgcm or age"`
	LogLevel       string        `env:"DNDADMIN_LOG_LEVEL" env-description:"debug, info, warn or error"`
}

func parseEnv(cfg *Config) error {
	var ec EnvConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		return err
	}

	setString(&cfg.ServerBaseURL, ec.ServerBaseURL)
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	setString(&cfg.HashEncoding, ec.HashEncoding)
	if len(ec.RoleOptions) > 0 {
		cfg.RoleOptions = ec.RoleOptions
	}
	setString(&cfg.DataDir, ec.DataDir)
	setString(&cfg.TokenSealer, ec.TokenSealer)
	setString(&cfg.LogLevel, ec.LogLevel)
	return nil
}

// EnvUsage describes the supported environment variables.
func EnvUsage() (string, error) {
	return cleanenv.GetDescription(&EnvConfig{}, nil)
}
