package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// setupLog configures the global logger. ESPEAKER_LOGFILE redirects the
// structured log to a file; ESPEAKER_DEBUG lowers the level. The returned
// closer flushes the log file, if any.
func setupLog(cfg envConfig) (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.LogFile == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.RFC3339)
	return f.Close, nil
}
