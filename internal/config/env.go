package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvJSONFile      = "ROUTINES_JSON_FILE"
	EnvLogLevel      = "ROUTINES_LOG_LEVEL"
	EnvLogFormat     = "ROUTINES_LOG_FORMAT"
	EnvOCRLanguage   = "ROUTINES_OCR_LANGUAGE"
	EnvMinLineLength = "ROUTINES_MIN_LINE_LENGTH"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvJSONFile); v != "" {
		cfg.JSONFile = v
		cfg.setSource(FieldJSONFile, SourceEnv)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.setSource(FieldLogLevel, SourceEnv)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.setSource(FieldLogFormat, SourceEnv)
	}
	if v := os.Getenv(EnvOCRLanguage); v != "" {
		cfg.OCR.Language = v
		cfg.setSource(FieldOCRLanguage, SourceEnv)
	}
	if v := os.Getenv(EnvMinLineLength); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvMinLineLength, v)
		}
		cfg.OCR.MinLineLength = n
		cfg.setSource(FieldMinLineLength, SourceEnv)
	}
	return nil
}
