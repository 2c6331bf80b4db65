package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

const (
	ModeDevelopment = "development"
	ModeTest        = "test"
)

type Config struct {
	DBConnectionString string        `env:"DB_CONNECTION_STRING"`
	DBName             string        `env:"DB_NAME,default=messageboard"`
	AppEnv             string        `env:"APP_ENV"`
	NodeEnv            string        `env:"NODE_ENV"`
	Host               string        `env:"HOST"`
	Port               int           `env:"PORT,default=3000"`
	LogLevel           string        `env:"LOG_LEVEL,default=info"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS,default=*"`
	OTLPEndpoint       string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName        string        `env:"OTEL_SERVICE_NAME,default=messageboard"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config error: invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}

// Mode is the runtime mode. APP_ENV wins over NODE_ENV.
func (c Config) Mode() string {
	switch {
	case c.AppEnv != "":
		return strings.ToLower(c.AppEnv)
	case c.NodeEnv != "":
		return strings.ToLower(c.NodeEnv)
	default:
		return ModeDevelopment
	}
}

// IsTest reports whether request logging must be suppressed.
func (c Config) IsTest() bool {
	return c.Mode() == ModeTest
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
