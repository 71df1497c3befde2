package config

import (
	"flag"
	"strings"
)

// Flag names.
const (
	flagJSONFile      = "json-file"
	flagConfig        = "config"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagOCRLanguage   = "ocr-lang"
	flagMinLineLength = "min-line-length"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	flagJSONFile:      FieldJSONFile,
	flagLogLevel:      FieldLogLevel,
	flagLogFormat:     FieldLogFormat,
	flagOCRLanguage:   FieldOCRLanguage,
	flagMinLineLength: FieldMinLineLength,
}

// parseFlags defines and parses the global CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("routines", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.JSONFile, flagJSONFile, cfg.JSONFile, "JSON file to store routines")
	fs.StringVar(&cfg.ConfigFile, flagConfig, cfg.ConfigFile, "Path to a TOML config file")
	fs.StringVar(&cfg.LogLevel, flagLogLevel, cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, flagLogFormat, cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.StringVar(&cfg.OCR.Language, flagOCRLanguage, cfg.OCR.Language, "Tesseract language code for image processing")
	fs.IntVar(&cfg.OCR.MinLineLength, flagMinLineLength, cfg.OCR.MinLineLength, "OCR lines must be longer than this to become routines")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			cfg.setSource(field, SourceFlag)
		}
	})
	return nil
}

// configFlagValue finds the -config value among the global flags in args
// without parsing them, so the file can be loaded before flags override it.
// Scanning stops at the first non-flag argument (the subcommand).
func configFlagValue(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") || arg == "-" {
			return ""
		}
		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}
		if isBoolFlag(name) {
			continue
		}
		if !hasValue && i+1 < len(args) {
			i++
			value = args[i]
		}
		if name == flagConfig {
			return value
		}
	}
	return ""
}

func isBoolFlag(name string) bool {
	switch name {
	case "h", "help", "v", "version":
		return true
	}
	return false
}
