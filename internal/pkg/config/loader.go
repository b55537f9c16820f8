// Package config contains the fail-open loaders behind the dashboard
// configuration. Each loader returns the value to use together with any
// warnings; an invalid value never aborts startup, it falls back to the
// default and the caller logs the warning.
package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult is the outcome of loading one environment variable.
type ConfigLoadResult struct {
	// Value holds the loaded value. Its dynamic type matches the default
	// passed to the loader (string, time.Duration, int, float64 or bool).
	Value interface{}

	// Warnings explains every fallback that was applied.
	Warnings []string

	// FallbackApplied is true when an invalid value was replaced by the default.
	FallbackApplied bool
}

func loaded(v interface{}) ConfigLoadResult {
	return ConfigLoadResult{Value: v}
}

func fellBack(def interface{}, format string, args ...interface{}) ConfigLoadResult {
	return ConfigLoadResult{
		Value:           def,
		Warnings:        []string{fmt.Sprintf(format, args...)},
		FallbackApplied: true,
	}
}

// LoadEnvString reads envKey without validation.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback reads a string and validates it. Unset or empty
// values yield the default silently.
//
//	result := LoadEnvWithFallback("NEWS_PROVIDER", "rss",
//	    func(v string) error { return ValidateOneOf(v, "rss", "newsapi") })
//	provider := result.Value.(string)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return loaded(defaultValue)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fellBack(defaultValue,
				"Invalid %s='%s': %v, falling back to default '%s'", envKey, value, err, defaultValue)
		}
	}
	return loaded(value)
}

// LoadEnvDuration reads a Go duration string ("5s", "1m30s").
//
//	result := LoadEnvDuration("FETCH_TIMEOUT", 5*time.Second, ValidatePositiveDuration)
//	timeout := result.Value.(time.Duration)
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fellBack(defaultValue,
			"Invalid %s='%s': %v, falling back to default '%v'", envKey, valueStr, err, defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fellBack(defaultValue,
				"Invalid %s='%s': %v, falling back to default '%v'", envKey, valueStr, err, defaultValue)
		}
	}
	return loaded(parsed)
}

// LoadEnvInt reads a base-10 integer. Values with trailing characters such
// as "7 days" or "7.5" are rejected.
//
//	result := LoadEnvInt("NEWS_HISTORY_DAYS", 7,
//	    func(v int) error { return ValidateIntRange(v, 1, 30) })
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	var parsed int
	var rest string
	// 余分な文字列が残る入力 ("7 days") は Sscanf が2つ目を読めた時点で不正扱い
	if n, _ := fmt.Sscanf(valueStr, "%d%s", &parsed, &rest); n != 1 {
		return fellBack(defaultValue,
			"Invalid %s='%s': invalid integer format, falling back to default '%d'", envKey, valueStr, defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fellBack(defaultValue,
				"Invalid %s='%s': %v, falling back to default '%d'", envKey, valueStr, err, defaultValue)
		}
	}
	return loaded(parsed)
}

// LoadEnvFloat reads a decimal number such as a sampling ratio.
func LoadEnvFloat(envKey string, defaultValue float64, validator func(float64) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	var parsed float64
	var rest string
	if n, _ := fmt.Sscanf(valueStr, "%g%s", &parsed, &rest); n != 1 {
		return fellBack(defaultValue,
			"Invalid %s='%s': invalid number format, falling back to default '%g'", envKey, valueStr, defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fellBack(defaultValue,
				"Invalid %s='%s': %v, falling back to default '%g'", envKey, valueStr, err, defaultValue)
		}
	}
	return loaded(parsed)
}

// LoadEnvBool reads a boolean ("true", "false", "1", "0" and case variants).
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return loaded(defaultValue)
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return loaded(true)
	case "0", "f", "F", "false", "FALSE", "False":
		return loaded(false)
	default:
		return fellBack(defaultValue,
			"Invalid %s='%s': invalid boolean format, expected 'true' or 'false', falling back to default '%t'",
			envKey, valueStr, defaultValue)
	}
}
