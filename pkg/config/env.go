// Package config reads plain environment variables with typed defaults.
//
// Values that cannot be parsed fall back to the default and log a warning,
// so a typo in an optional setting never stops the dashboard from starting.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup parses key with parse. Unset or blank values yield def silently;
// unparsable ones yield def with a warning.
func lookup[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring unparsable environment variable",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the value of key, or defaultValue when it is unset or blank.
//
//	addr := GetEnvString("HTTP_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	return lookup(key, defaultValue, func(s string) (string, error) { return s, nil })
}

// GetEnvInt returns key as a base-10 integer.
//
//	days := GetEnvInt("NEWS_HISTORY_DAYS", 7)
func GetEnvInt(key string, defaultValue int) int {
	return lookup(key, defaultValue, strconv.Atoi)
}

// GetEnvBool accepts the spellings of strconv.ParseBool.
//
//	enabled := GetEnvBool("SLACK_ENABLED", false)
func GetEnvBool(key string, defaultValue bool) bool {
	return lookup(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration returns key parsed with time.ParseDuration; a bare number
// has no unit and is rejected.
//
//	timeout := GetEnvDuration("FETCH_TIMEOUT", 5*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookup(key, defaultValue, time.ParseDuration)
}
