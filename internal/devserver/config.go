package devserver

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/dmitrijs2005/dndadmin/internal/flagx"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config of the development server. Values come from an optional YAML or
// TOML file (-c/-config) and DNDADMIN_DEV_* environment variables, the
// latter winning.
type Config struct {
	Addr         string        `yaml:"addr" toml:"addr" env:"DNDADMIN_DEV_ADDR" env-default:"127.0.0.1:5000"`
	JWTSecret    string        `yaml:"jwt_secret" toml:"jwt_secret" env:"DNDADMIN_DEV_JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" toml:"token_ttl" env:"DNDADMIN_DEV_TOKEN_TTL" env-default:"1h"`
	HashEncoding string        `yaml:"hash_encoding" toml:"hash_encoding" env:"DNDADMIN_DEV_HASH_ENCODING" env-default:"hex"`
	RoleOptions  []string      `yaml:"role_options" toml:"role_options" env:"DNDADMIN_DEV_ROLES" env-separator:"," env-default:"User,DM,Admin"`

	AdminEmail    string `yaml:"admin_email" toml:"admin_email" env:"DNDADMIN_DEV_ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminUsername string `yaml:"admin_username" toml:"admin_username" env:"DNDADMIN_DEV_ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `yaml:"admin_password" toml:"admin_password" env:"DNDADMIN_DEV_ADMIN_PASSWORD" env-default:"admin123"`
	SeedDemoUsers bool   `yaml:"seed_demo_users" toml:"seed_demo_users" env:"DNDADMIN_DEV_SEED_DEMO" env-default:"true"`

	LogLevel string `yaml:"log_level" toml:"log_level" env:"DNDADMIN_DEV_LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads the file named by -c/-config in args, if any, then the
// environment.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
	if _, err := cryptox.ParseHashEncoding(c.HashEncoding); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(c.RoleOptions, RoleAdmin) {
		errs = append(errs, fmt.Errorf("role options must include %q", RoleAdmin))
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		errs = append(errs, errors.New("admin email and password are required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
