package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	Logging LoggingConfig `mapstructure:"logging"`
	Mock    MockConfig    `mapstructure:"mock"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	// StorePath is the sqlite file mirroring the token pair across restarts.
	StorePath string `mapstructure:"store_path"`
}

type SuggestConfig struct {
	QuietInterval time.Duration `mapstructure:"quiet_interval"`
	MinPromptLen  int           `mapstructure:"min_prompt_len"`
}

type LoggingConfig struct {
	Level        string        `mapstructure:"level"`
	Format       string        `mapstructure:"format"`
	File         string        `mapstructure:"file"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
}

// MockConfig configures the local mock Taskbench API server.
type MockConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
}

func (c MockConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// API
	v.SetDefault("api.base_url", "http://localhost:8080/api/v1/")
	v.SetDefault("api.timeout", "30s")

	// Auth
	v.SetDefault("auth.store_path", defaultStorePath())

	// Suggestions
	v.SetDefault("suggest.quiet_interval", "1200ms")
	v.SetDefault("suggest.min_prompt_len", 8)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.max_age", "168h")
	v.SetDefault("logging.rotation_time", "24h")

	// Mock server
	v.SetDefault("mock.host", "0.0.0.0")
	v.SetDefault("mock.port", 8080)
	v.SetDefault("mock.jwt_secret", "taskbench-mock-secret-do-not-use")
	v.SetDefault("mock.access_token_ttl", "15m")
	v.SetDefault("mock.refresh_token_ttl", "168h") // 7 days
	v.SetDefault("mock.rate_limit", 60)
	v.SetDefault("mock.rate_burst", 10)
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.base_url", "TASKBENCH_API_URL")
	v.BindEnv("auth.store_path", "TASKBENCH_STORE_PATH")
	v.BindEnv("logging.level", "TASKBENCH_LOG_LEVEL")
	v.BindEnv("logging.file", "TASKBENCH_LOG_FILE")
	v.BindEnv("mock.jwt_secret", "JWT_SECRET")
	v.BindEnv("mock.redis_addr", "REDIS_ADDR")
	v.BindEnv("mock.redis_password", "REDIS_PASSWORD")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskbench.db"
	}
	return home + "/.taskbench/taskbench.db"
}
