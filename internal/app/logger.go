package app

import (
	"strings"

	"libris/pkg/logger"
)

// ConfigureLogging initialises the global logger from the log section,
// defaulting to info. A non-empty path adds a rotating file sink.
func ConfigureLogging(cfg LogConfig) error {
	level := strings.TrimSpace(cfg.Level)
	if level == "" {
		level = "info"
	}
	if path := strings.TrimSpace(cfg.Path); path != "" {
		return logger.InitWithRotation(level, path)
	}
	return logger.Init(level)
}
