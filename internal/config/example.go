package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Practice routines configuration file
# Values can be overridden by environment variables (ROUTINES_*) or CLI flags

# Routine store (supports ~ and $VAR expansion)
json_file = "practice_routines.json"

# Diagnostics: debug, info, warn, error
log_level = "info"

# Log output: text, json, logfmt
log_format = "text"

[ocr]
# Tesseract language code (eng, deu, fra, spa, ...)
language = "eng"

# OCR lines must be longer than this many characters to become routines
min_line_length = 10
`
}
