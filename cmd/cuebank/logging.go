package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const logLevelEnvKey = "CUEBANK_LOG_LEVEL"

// configureLoggerForCLI picks a level from flag > env > config and installs
// the default logger.
func configureLoggerForCLI(flagLevel, configLevel string) error {
	rawLevel := flagLevel
	if strings.TrimSpace(rawLevel) == "" {
		rawLevel = os.Getenv(logLevelEnvKey)
	}
	if strings.TrimSpace(rawLevel) == "" {
		rawLevel = configLevel
	}

	level, err := parseLogLevel(rawLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(level))
	return nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return slog.LevelWarn, nil
	}
	if strings.EqualFold(value, "warning") {
		value = "warn"
	}

	if numeric, err := strconv.Atoi(value); err == nil {
		return slog.Level(numeric), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
