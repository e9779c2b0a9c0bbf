package utils

import (
	"log"
	"os"
)

// LoggerConfig defines how the application logger writes.
type LoggerConfig struct {
	Output       *os.File
	EnableColors bool
}

// InitLogger builds the process-wide logger used outside the request path
// (startup, scheduler, shutdown). Request logging is fiber middleware.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[Course Market] "
	if cfg.EnableColors {
		prefix = "\033[36m" + prefix + "\033[0m"
	}

	return log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
}
