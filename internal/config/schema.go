package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const mappingSchemaURL = "mapping.schema.json"

//go:embed mapping.schema.json
var mappingSchema []byte

// ValidateFile checks the mapping file at path against the mapping schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read mapping file: %v", ErrConfig, err)
	}
	return ValidateData(data)
}

// ValidateData checks a YAML or JSON mapping document against the mapping schema.
func ValidateData(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: failed to decode mapping file: %v", ErrConfig, err)
	}

	// Round-trip through JSON so the validator sees JSON types only.
	encoded, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return fmt.Errorf("%w: failed to encode mapping file: %v", ErrConfig, err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("%w: failed to encode mapping file: %v", ErrConfig, err)
	}

	schema, err := compileMappingSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

func compileMappingSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(mappingSchemaURL, bytes.NewReader(mappingSchema)); err != nil {
		return nil, fmt.Errorf("failed to load mapping schema: %w", err)
	}
	schema, err := compiler.Compile(mappingSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mapping schema: %w", err)
	}
	return schema, nil
}

func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, normalizeYAML(item))
		}
		return out
	default:
		return v
	}
}
