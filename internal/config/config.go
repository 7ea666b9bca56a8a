package config

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger = zap.NewNop()

// NewLogger builds a production logger for APP_ENV=production and a development one otherwise.
func NewLogger(env, level string) (*zap.Logger, error) {
	var zcfg zap.Config
	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

// InitLogger replaces the process logger used by bootstrap code.
func InitLogger(cfg *Config) *zap.Logger {
	logger, err := NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	Logger = logger

	Logger.Info("Zap logger initialized", zap.String("env", cfg.AppEnv), zap.String("level", cfg.LogLevel))
	return Logger
}
