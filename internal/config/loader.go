package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the environment variable holding the config path.
	EnvConfigPath = "SCRIPTORIUM_CONFIG"
	// DefaultPath is read when it exists and no path was given.
	DefaultPath = "./scriptorium.yaml"
)

// Load reads configuration. Priority: ENV > YAML > defaults (via env-default
// tags). The YAML path is path, else $SCRIPTORIUM_CONFIG, else DefaultPath.
// A missing file is an error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv(EnvConfigPath)
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration built from defaults and the environment
// only.
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

const maskedPassword = "********"

// YAML renders the configuration with the mail password masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	out.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	if out.Mail.Password != "" {
		out.Mail.Password = maskedPassword
	}
	return yaml.Marshal(&out)
}
