package routine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL is the resource name the embedded schema is registered under.
const SchemaURL = "routines.schema.json"

// SchemaJSON describes the routine file.
const SchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Practice routines",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "category", "tags", "state"],
    "additionalProperties": false,
    "properties": {
      "text": {"type": "string", "minLength": 1},
      "category": {"enum": ["daily", "one_day", "two_three_days", "one_week"]},
      "tags": {"type": "array", "items": {"type": "string"}},
      "state": {"enum": ["not_completed", "completed", "in_progress"]}
    }
  }
}`

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	Count    int // number of routines in the file, when it parsed
}

// Validate checks raw file content against the embedded schema, then runs
// the per-routine checks. It never writes anything.
func Validate(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("invalid JSON: %w", err),
		})
		return result
	}

	schema, err := compileSchema()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("schema unavailable, using minimal checks: %v", err))
	} else if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return result
	}

	var routines []Routine
	if err := json.Unmarshal(data, &routines); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("decode routines: %w", err),
		})
		return result
	}
	result.Count = len(routines)

	for i := range routines {
		if verr := routines[i].Check(fmt.Sprintf("[%d]", i)); verr != nil {
			result.Valid = false
			result.Errors = append(result.Errors, verr)
		}
		if len(routines[i].Tags) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("[%d]: no tags", i))
		}
	}

	return result
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(SchemaURL, strings.NewReader(SchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(SchemaURL)
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/3/category" into "[3].category".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
