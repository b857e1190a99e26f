// Package schemas validates LLM structured output against embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "schema validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error { return e.Cause }

// Validate checks a JSON document against the named embedded schema
// (e.g., "resume_analysis"). Returns *ValidationError when the document does
// not conform and *SchemaLoadError when the schema itself cannot be loaded.
func Validate(name string, document []byte) error {
	raw, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "schema not found", Cause: err}
	}

	schemaLoader := gojsonschema.NewBytesLoader(raw)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "validation could not run", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
