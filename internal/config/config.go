package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers for game sessions.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string   `mapstructure:"env"`                 // current application environment (local, dev, production etc)
	LogLevel          string   `mapstructure:"log_level"`           // overrides the env's default log level when set
	TelegramAPIToken  string   `mapstructure:"-"`                   // Telegram API token loaded from environment
	CountriesJSONPath string   `mapstructure:"countries_json_path"` // path to JSON file with the flag pool
	Telegram          Telegram `mapstructure:"telegram"`            // bot client options
	Storage           Storage  `mapstructure:"storage"`             // game session storage selection
	DB                DB       `mapstructure:"database"`            // database configuration section
	Redis             Redis    `mapstructure:"redis"`               // redis configuration section
	HTTP              HTTP     `mapstructure:"http"`                // ops HTTP server
}

type Telegram struct {
	Debug bool `mapstructure:"debug"` // log raw Bot API traffic
}

type Storage struct {
	Driver        string        `mapstructure:"driver"`         // memory, postgres or redis
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`       // memory sessions idle this long are evicted
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec of the eviction sweep
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

type Redis struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"` // expiry of an idle game session
}

type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the server
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Values from .env never override variables already set in the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("countries_json_path", "assets/data/countries.json")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("log_level", "")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.idle_ttl", "24h")
	v.SetDefault("storage.sweep_schedule", "@every 10m")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl", "24h")
	v.SetDefault("http.addr", ":8080")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case StorageRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("%w: REDIS_ADDR", ErrMissingEnvironmentVariables)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	return &cfg, nil
}
