package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/config"
)

// New builds a production logger for the production env and a development
// logger otherwise. A non-empty cfg.LogLevel replaces the default level.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}

	return zcfg.Build()
}
