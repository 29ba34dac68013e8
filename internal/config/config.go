package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. PORTCFG_API_BASE_URL.
const EnvPrefix = "PORTCFG"

// Cache drivers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Cluster ClusterConfig `mapstructure:"cluster"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

// APIConfig locates the port update service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig selects the port model store.
type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	Dir    string        `mapstructure:"dir"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

// RedisConfig configures the redis cache driver.
type RedisConfig struct {
	Address string `mapstructure:"address"`
	Prefix  string `mapstructure:"prefix"`
}

// ClusterConfig carries the operator's cluster acknowledgements.
type ClusterConfig struct {
	DisconnectionAcknowledged bool `mapstructure:"disconnection_acknowledged"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig configures the reference port service.
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	Fixtures string `mapstructure:"fixtures"`
	Metrics  bool   `mapstructure:"metrics"`
}

// New returns a viper instance with defaults, config search paths and env binding.
// An explicit file overrides the search.
func New(file string) *viper.Viper {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("portcfg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".portcfg"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080/nifi-api")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("cache.driver", DriverFile)
	v.SetDefault("cache.dir", filepath.Join(".portcfg", "ports"))
	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("cache.redis.address", "127.0.0.1:6379")
	v.SetDefault("cache.redis.prefix", "portcfg:port:")

	v.SetDefault("cluster.disconnection_acknowledged", false)

	v.SetDefault("log.level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.fixtures", "")
	v.SetDefault("server.metrics", true)
}

// Load reads the configuration. A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot check by type.
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case DriverFile, DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("unknown cache driver %q (want file, memory or redis)", c.Cache.Driver)
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	return nil
}
