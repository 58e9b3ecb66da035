package util

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment         string        `mapstructure:"ENVIRONMENT"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	MigrationURL        string        `mapstructure:"MIGRATION_URL"`
	HTTPServerAddress   string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisAddress        string        `mapstructure:"REDIS_ADDRESS"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RenderCacheTTL      time.Duration `mapstructure:"RENDER_CACHE_TTL"`
	AllowedOrigins      []string      `mapstructure:"ALLOWED_ORIGINS"`

	// MaxNestingDepth and WarningsCap bound the parsing of the posts, zero means the parser defaults.
	MaxNestingDepth int `mapstructure:"MAX_NESTING_DEPTH"`
	WarningsCap     int `mapstructure:"WARNINGS_CAP"`
}

// defaults of the settings which may be missing from app.env
var defaults = map[string]any{
	"ENVIRONMENT":       "production",
	"RENDER_CACHE_TTL":  10 * time.Minute,
	"ALLOWED_ORIGINS":   []string{"*"},
	"MAX_NESTING_DEPTH": 0,
	"WARNINGS_CAP":      100,
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

// ExtractHostPort parses the HTTP server address and returns the host and port components.
// The scheme is optional. If no port is specified, port will be an empty string.
func (config *Config) ExtractHostPort() (host string, port string, err error) {
	addr := config.HTTPServerAddress
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		err = fmt.Errorf("error parsing http server url: %w", err)
		return
	}

	host, port = u.Hostname(), u.Port()
	if host == "" {
		err = fmt.Errorf("http server address %q has no host", config.HTTPServerAddress)
	}

	return
}

// ListenAddress returns the "host:port" form of the HTTP server address used by net.Listen.
func (config *Config) ListenAddress() (string, error) {
	host, port, err := config.ExtractHostPort()
	if err != nil {
		return "", err
	}

	if port == "" {
		port = "80"
	}

	return net.JoinHostPort(host, port), nil
}
