package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	StoreDriver   string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ViewsDir  string
	PublicDir string
	SeedPosts bool
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SEED_POSTS", true)

	cfg := &Config{
		AppPort:       v.GetString("APP_PORT"),
		AppEnv:        v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		DBDSN:         v.GetString("DB_DSN"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		ViewsDir:      v.GetString("VIEWS_DIR"),
		PublicDir:     v.GetString("PUBLIC_DIR"),
		SeedPosts:     v.GetBool("SEED_POSTS"),
	}
	return cfg, nil
}

// Validate checks that the selected store has what it needs to connect.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is not set")
	}

	switch c.StoreDriver {
	case DriverMemory:
	case DriverMySQL, DriverSQLite:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is not set (required by store driver %q)", c.StoreDriver)
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is not set (required by store driver %q)", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}
