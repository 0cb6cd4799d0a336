package farmacia

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	goerrors "github.com/goliatone/go-errors"
)

// EnvConfig is the default Config implementation, populated from the
// environment.
type EnvConfig struct {
	BaseURL         string `env:"FARMACIA_API_URL" envDefault:"http://localhost:3000"`
	TimeoutSeconds  int    `env:"FARMACIA_HTTP_TIMEOUT" envDefault:"30"`
	CredentialsPath string `env:"FARMACIA_CREDENTIALS_FILE"`
	SnapshotDSN     string `env:"FARMACIA_SNAPSHOT_DSN"`
	Debug           bool   `env:"FARMACIA_DEBUG"`
}

var _ Config = (*EnvConfig)(nil)

// LoadConfig parses configuration from the environment.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse environment configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c *EnvConfig) GetHTTPTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetCredentialsPath falls back to the user config directory when unset.
func (c *EnvConfig) GetCredentialsPath() string {
	if c.CredentialsPath != "" {
		return c.CredentialsPath
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".farmacia", "credentials")
	}
	return filepath.Join(dir, "farmacia", "credentials")
}

func (c *EnvConfig) GetSnapshotDSN() string {
	return c.SnapshotDSN
}

func (c *EnvConfig) GetDebug() bool {
	return c.Debug
}
