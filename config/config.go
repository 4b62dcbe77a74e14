package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/healthbridge/records-api/internal/email"
	"github.com/healthbridge/records-api/internal/repository/postgres"
	"github.com/healthbridge/records-api/pkg/logger"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

type CacheConfig struct {
	DirectoryTTL time.Duration `mapstructure:"directory_ttl" envconfig:"CACHE_DIRECTORY_TTL"`
}

type Config struct {
	Server    ServerConfig            `mapstructure:"server"`
	Database  postgres.DatabaseConfig `mapstructure:"database"`
	JWT       JWTConfig               `mapstructure:"jwt"`
	Redis     RedisConfig             `mapstructure:"redis"`
	SMTP      email.Config            `mapstructure:"smtp"`
	Logger    logger.Config           `mapstructure:"logger"`
	RateLimit RateLimitConfig         `mapstructure:"rate_limit"`
	Cache     CacheConfig             `mapstructure:"cache"`
}

// Load reads config.yml, then applies HBR_-prefixed environment overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("hbr", &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.JWT.ExpiryHours == 0 {
		config.JWT.ExpiryHours = 24
	}
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = 50
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = 100
	}
	if config.Cache.DirectoryTTL == 0 {
		config.Cache.DirectoryTTL = 5 * time.Minute
	}

	return &config, nil
}
