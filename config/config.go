package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    int           `mapstructure:"http_port"`
	GRPCPort    int           `mapstructure:"grpc_port"`
	LogLevel    string        `mapstructure:"log_level"`
	ServiceName string        `mapstructure:"service_name"`
	JwtSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`

	Database DatabaseConfig `mapstructure:"database"`
	Consul   ConsulConfig   `mapstructure:"consul"`
}

// DatabaseConfig selects the GORM dialector and its DSN.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // mysql, postgres or sqlite
	URL      string `mapstructure:"url"`
	LogLevel string `mapstructure:"log_level"`
	Seed     bool   `mapstructure:"seed"`
}

// ConsulConfig controls service registration. An empty Address disables it.
type ConsulConfig struct {
	Address       string `mapstructure:"address"`
	AdvertiseHost string `mapstructure:"advertise_host"` // host Consul uses to reach this process
	CheckInterval string `mapstructure:"check_interval"`
}

// DefaultJwtSecret is only meant for local development.
const DefaultJwtSecret = "default-very-insecure-secret-key"

// Load reads config.yaml from the working directory (or ./config) and
// applies FAVORITES_* environment overrides on top of the defaults.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("FAVORITES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", 8080)
	v.SetDefault("grpc_port", 50051)
	v.SetDefault("log_level", "info")
	v.SetDefault("service_name", "favorites")
	v.SetDefault("jwt_secret", DefaultJwtSecret) // CHANGE THIS IN PRODUCTION
	v.SetDefault("token_ttl", 24*time.Hour)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "favorites.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.seed", false)

	v.SetDefault("consul.address", "")
	v.SetDefault("consul.advertise_host", "localhost")
	v.SetDefault("consul.check_interval", "10s")
}
