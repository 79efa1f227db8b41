package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/client/credstore"
	"github.com/dmitrijs2005/dndadmin/internal/client/models"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/dmitrijs2005/dndadmin/internal/filex"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
)

// Config holds runtime settings for the admin CLI.
type Config struct {
	// ServerBaseURL is the API root without a trailing slash.
	ServerBaseURL  string
	RequestTimeout time.Duration
	// HashEncoding is "hex" or "base64" and must match the server.
	HashEncoding string
	// RoleOptions are the roles the operator may assign.
	RoleOptions []string
	// DataDir holds the local database and the token key material.
	DataDir     string
	TokenSealer string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 20 * time.Second
	c.HashEncoding = string(cryptox.HashHex)
	c.RoleOptions = slices.Clone(models.DefaultRoleOptions)
	c.TokenSealer = credstore.SealerAESGCM
	c.LogLevel = "warn"

	dir, err := filex.DefaultAppDataDir(common.AppName)
	if err != nil {
		dir = "." + common.AppName
	}
	c.DataDir = dir
}

// Validate checks every field and normalizes ServerBaseURL.
func (c *Config) Validate() error {
	var errs []error

	c.ServerBaseURL = strings.TrimRight(strings.TrimSpace(c.ServerBaseURL), "/")
	if u, err := url.Parse(c.ServerBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("server url %q: want http(s)://host[:port]", c.ServerBaseURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if _, err := cryptox.ParseHashEncoding(c.HashEncoding); err != nil {
		errs = append(errs, err)
	}
	if len(c.RoleOptions) == 0 {
		errs = append(errs, errors.New("at least one role option is required"))
	}
	for _, r := range c.RoleOptions {
		if strings.TrimSpace(r) == "" {
			errs = append(errs, errors.New("role options must not be blank"))
			break
		}
	}
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data dir is required"))
	}
	switch strings.ToLower(c.TokenSealer) {
	case credstore.SealerAESGCM, credstore.SealerAge:
	default:
		errs = append(errs, fmt.Errorf("unknown token sealer %q", c.TokenSealer))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then DNDADMIN_* environment variables, then command-line
// flags. Later sources win. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
