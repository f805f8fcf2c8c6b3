package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Environment   string        `mapstructure:"environment"`
	ServerAddress string        `mapstructure:"server.address"`
	ServerTimeout time.Duration `mapstructure:"server.timeout"`
	LogLevel      string        `mapstructure:"logging.level"`
	LogFormat     string        `mapstructure:"logging.format"`
	Backend       BackendConfig
	Redis         RedisConfig
	Refresh       RefreshConfig
	Tracing       TracingConfig
}

// BackendConfig holds the remote REST backend configuration
type BackendConfig struct {
	BaseURL   string        `mapstructure:"backend.base_url"`
	AuthToken string        `mapstructure:"backend.auth_token"`
	Timeout   time.Duration `mapstructure:"backend.timeout"`
}

// RedisConfig holds Redis snapshot-cache configuration
type RedisConfig struct {
	Host     string `mapstructure:"redis.host"`
	Port     int    `mapstructure:"redis.port"`
	Password string `mapstructure:"redis.password"`
	DB       int    `mapstructure:"redis.db"`
	Enabled  bool   `mapstructure:"redis.enabled"`
}

// RefreshConfig holds background refresh worker configuration
type RefreshConfig struct {
	Interval        time.Duration `mapstructure:"refresh.interval"`
	VehiclePersonID int64         `mapstructure:"refresh.vehicle_person_id"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	LicenseKey     string `mapstructure:"tracing.license_key"`
	AppName        string `mapstructure:"tracing.app_name"`
	LogEnabled     bool   `mapstructure:"tracing.log_enabled"`
	DistribTracing bool   `mapstructure:"tracing.distributed_tracing_enabled"`
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Setup configuration paths
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Continue even if no config file is found - we'll use ENV vars and defaults
			fmt.Printf("Warning: No configuration file found: %v\n", err)
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Enable environment variables to override config
	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Core settings
	v.SetDefault("environment", "development")
	v.SetDefault("server.address", "0.0.0.0:8090")
	v.SetDefault("server.timeout", "30s")

	// Backend settings
	v.SetDefault("backend.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("backend.auth_token", "")
	v.SetDefault("backend.timeout", "30s")

	// Redis settings
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", false)

	// Refresh worker settings
	v.SetDefault("refresh.interval", "2m")
	v.SetDefault("refresh.vehicle_person_id", 0)

	// Tracing settings
	v.SetDefault("tracing.app_name", "Console Service")
	v.SetDefault("tracing.log_enabled", true)
	v.SetDefault("tracing.distributed_tracing_enabled", true)

	// Logging settings
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
