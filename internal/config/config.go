package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	SessionConfig
	PollingConfig
	UIConfig
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetDataFolder() string
	GetRedisURL() string
}

type mainConfig struct {
	EnvVars
	Session
	Polling
	UI
}

// New reads the configuration from the environment. Unset variables take their defaults.
func New() (Config, error) {
	c := mainConfig{}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("config.New env.Parse: %w", err)
	}
	if err := c.Session.validate(); err != nil {
		return nil, err
	}
	if err := c.UI.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
