package config

import (
	"net/url"
	"strings"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Workflow WorkflowConfig
}

type ServerConfig struct {
	Port    string `env:"PORT"     env-default:"8080"`
	GinMode string `env:"GIN_MODE" env-default:"debug"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `env:"DB_HOST"     env-default:"localhost"`
	Port     string `env:"DB_PORT"     env-default:"5432"`
	User     string `env:"DB_USER"     env-default:"postgres"`
	Password string `env:"DB_PASSWORD" env-default:"postgres"`
	Name     string `env:"DB_NAME"     env-default:"postgres"`
	SSLMode  string `env:"DB_SSLMODE"  env-default:"disable"`
}

// DSN renders the settings as a postgres:// connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type CORSConfig struct {
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"http://localhost:5173,http://127.0.0.1:5173"`
}

// Origins splits AllowOrigins on commas, dropping blanks.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// WorkflowConfig controls how approval operations are committed.
// UseTransactions is the older boolean switch, read only when ConsistencyMode is empty.
type WorkflowConfig struct {
	ConsistencyMode string `env:"TIMESHEET_CONSISTENCY_MODE"`
	UseTransactions string `env:"USE_TRANSACTIONS"`
}

func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}
