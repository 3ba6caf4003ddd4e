package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type AuthConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	// APIKeys maps a tier name to its static key.
	APIKeys map[string]string `mapstructure:"api_keys"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig tunes the hybrid recommendation engine. Weights must be
// non-negative; they are not required to sum to 1.
type EngineConfig struct {
	ContentWeight       float64 `mapstructure:"content_weight"`
	CollaborativeWeight float64 `mapstructure:"collaborative_weight"`
	MFThreshold         int     `mapstructure:"mf_threshold"`
	MFFactors           int     `mapstructure:"mf_factors"`
	MFEpochs            int     `mapstructure:"mf_epochs"`
	// Seed fixes the SGD random source for reproducible training; 0 means
	// time-based seeding.
	Seed int64 `mapstructure:"seed"`
}

// CacheConfig controls the optional redis recommendation cache. The engine
// itself never requires redis; leaving Enabled false keeps the process
// fully self-contained.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Auth defaults
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.token_ttl", "24h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Engine defaults
	viper.SetDefault("engine.content_weight", 0.7)
	viper.SetDefault("engine.collaborative_weight", 0.3)
	viper.SetDefault("engine.mf_threshold", 10)
	viper.SetDefault("engine.mf_factors", 20)
	viper.SetDefault("engine.mf_epochs", 50)
	viper.SetDefault("engine.seed", 0)

	// Cache defaults
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.url", "redis://localhost:6379/0")
	viper.SetDefault("cache.ttl", "15m")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
