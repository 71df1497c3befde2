package config

import (
	"github.com/nibzard/practice-routines/internal/ingest"
	"github.com/nibzard/practice-routines/internal/routine"
)

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceFile     Source = "config file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// DefaultOCRLanguage is the Tesseract language code for English.
	DefaultOCRLanguage = "eng"
)

// Config holds the full configuration for the routines tool.
type Config struct {
	// JSONFile is the routine store path.
	JSONFile string `toml:"json_file"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	OCR OCRConfig `toml:"ocr"`

	// ConfigFile is the explicit file given with -config, if any.
	ConfigFile string `toml:"-"`

	// Sources maps each field name to the layer that last set it.
	Sources map[string]Source `toml:"-"`
}

// OCRConfig controls image processing.
type OCRConfig struct {
	// Language is the Tesseract language code, e.g. "eng" or "deu".
	Language string `toml:"language"`
	// MinLineLength drops OCR lines not longer than this many characters.
	MinLineLength int `toml:"min_line_length"`
}

// Field names used in Sources.
const (
	FieldJSONFile      = "json_file"
	FieldLogLevel      = "log_level"
	FieldLogFormat     = "log_format"
	FieldOCRLanguage   = "ocr.language"
	FieldMinLineLength = "ocr.min_line_length"
)

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{FieldJSONFile, FieldLogLevel, FieldLogFormat, FieldOCRLanguage, FieldMinLineLength}
}

// Value returns the current value of a field for display.
func (c *Config) Value(field string) any {
	switch field {
	case FieldJSONFile:
		return c.JSONFile
	case FieldLogLevel:
		return c.LogLevel
	case FieldLogFormat:
		return c.LogFormat
	case FieldOCRLanguage:
		return c.OCR.Language
	case FieldMinLineLength:
		return c.OCR.MinLineLength
	}
	return nil
}

func setDefaults(cfg *Config) {
	cfg.JSONFile = routine.DefaultFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.OCR.Language = DefaultOCRLanguage
	cfg.OCR.MinLineLength = ingest.DefaultMinLineLength

	cfg.Sources = make(map[string]Source)
	for _, field := range Fields() {
		cfg.Sources[field] = SourceDefault
	}
}
