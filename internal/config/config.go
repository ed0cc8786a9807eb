package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	Env          string `env:"ENV" envDefault:"development"`
	CustomerType string `env:"CUSTOMER_TYPE" envDefault:"medium-plan"`

	Backend BackendConfig
	Log     LogConfig `envPrefix:"LOG_"`
}

// BackendConfig locates the order endpoint. Local takes precedence over URL.
type BackendConfig struct {
	Local           string        `env:"BACKEND_LOCAL"`
	Port            int           `env:"PORT" envDefault:"3001"`
	URL             string        `env:"BACKEND"`
	CheckoutTimeout time.Duration `env:"CHECKOUT_TIMEOUT" envDefault:"30s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"`
	Output string `env:"OUTPUT" envDefault:"stderr"`
}

// Load reads STOREFRONT_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	base := c.Backend.BaseURL()
	if base == "" {
		return fmt.Errorf("backend is not configured: set %sBACKEND or %sBACKEND_LOCAL", envPrefix, envPrefix)
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("backend url[%s] is not valid: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend url[%s] must be http or https", base)
	}

	if c.Backend.usesPort() && (c.Backend.Port <= 0 || c.Backend.Port > 65535) {
		return fmt.Errorf("backend port[%d] is out of range", c.Backend.Port)
	}
	if c.Backend.CheckoutTimeout <= 0 {
		return fmt.Errorf("checkout timeout must be positive")
	}

	return nil
}

func (b BackendConfig) usesPort() bool {
	return strings.TrimSpace(b.Local) != ""
}

// BaseURL is "<local>:<port>" when a local backend is set, the full URL otherwise.
func (b BackendConfig) BaseURL() string {
	if local := strings.TrimSpace(b.Local); local != "" {
		return fmt.Sprintf("%s:%d", strings.TrimRight(local, "/"), b.Port)
	}
	return strings.TrimRight(strings.TrimSpace(b.URL), "/")
}
