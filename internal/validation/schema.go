package validation

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names shipped with the binary
const (
	SchemaCatalog = "catalog.schema.json"
)

// SchemaValidator validates JSON documents against the embedded JSON schemas
type SchemaValidator interface {
	ValidateBytes(data []byte, schemaName string) error
	ValidateDocument(doc any, schemaName string) error
}

type schemaValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &schemaValidator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateBytes validates JSON data bytes against a named schema
func (v *schemaValidator) ValidateBytes(data []byte, schemaName string) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}
	return v.validate(doc, schemaName)
}

// ValidateDocument validates an already decoded document (e.g. from TOML).
// The document is round-tripped through JSON so numbers reach the schema as float64.
func (v *schemaValidator) ValidateDocument(doc any, schemaName string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return v.ValidateBytes(data, schemaName)
}

func (v *schemaValidator) validate(doc any, schemaName string) error {
	schema, err := v.loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatSchemaError(err)
	}
	return nil
}

// loadSchema loads and compiles a schema, caching the result
func (v *schemaValidator) loadSchema(schemaName string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[schemaName]; ok {
		return schema, nil
	}

	raw, err := schemaFS.ReadFile(path.Join("schemas", schemaName))
	if err != nil {
		return nil, fmt.Errorf("unknown schema: %w", err)
	}

	var schemaJSON interface{}
	if err := json.Unmarshal(raw, &schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	loc := path.Join("schemas", schemaName)
	if err := v.compiler.AddResource(loc, schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := v.compiler.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[schemaName] = schema
	return schema, nil
}

// formatSchemaError flattens a jsonschema error tree into one line per failure
func formatSchemaError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}
	var lines []string
	collectErrors(validationErr, &lines)
	return fmt.Errorf("schema validation failed:\n%s", strings.Join(lines, "\n"))
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")
	if len(err.InstanceLocation) == 0 {
		location = "(root)"
	}

	if err.ErrorKind != nil {
		if kw := err.ErrorKind.KeywordPath(); len(kw) > 0 {
			return fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(kw, "."))
		}
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
