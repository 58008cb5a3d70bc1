package config

import "strings"

type EnvVars struct {
	APIBaseURL string `env:"ADMIN_API_BASE_URL" envDefault:"http://localhost:5000/api"`
	AppName    string `env:"ADMIN_APP_NAME" envDefault:"Admin Console"`
	Env        string `env:"ADMIN_ENV" envDefault:"DEV"`
	LogLevel   string `env:"ADMIN_LOG_LEVEL" envDefault:"info"`
	DataFolder string `env:"ADMIN_DATA_FOLDER" envDefault:"./data"`
	RedisURL   string `env:"ADMIN_REDIS_URL"`
}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the backend base URL without a trailing slash
// (e.g. "https://api.example.com/api"). Endpoints are appended verbatim.
func (e EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(e.APIBaseURL, "/")
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetDataFolder() string {
	return e.DataFolder
}

// GetRedisURL returns the Redis URL backing the local storage area. Empty means file storage.
func (e EnvVars) GetRedisURL() string {
	return e.RedisURL
}
