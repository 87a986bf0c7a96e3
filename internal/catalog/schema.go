package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://chemiz/catalog.json"

func documentSchema() map[string]any {
	types := make([]any, 0, len(AllTypes()))
	for _, t := range AllTypes() {
		types = append(types, string(t))
	}

	element := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type":    "string",
				"pattern": "^[A-Z][a-z]{0,2}$",
			},
			"name": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"atomic_number": map[string]any{
				"type": "integer",
			},
			"atomic_mass": map[string]any{
				"type": "number",
			},
			"type": map[string]any{
				"type": "string",
				"enum": types,
			},
			"valencies": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":    "string",
					"pattern": "^(0|I|II|III|IV|V|VI|VII|VIII)$",
				},
			},
			"oxidation_states": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":    "string",
					"pattern": "^(0|[+-][1-8])$",
				},
			},
			"electron_configuration": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"state":           map[string]any{"type": "string"},
			"appearance":      map[string]any{"type": "string"},
			"oxide_character": map[string]any{"type": "string"},
		},
		"required": []any{
			"symbol", "name", "atomic_number", "atomic_mass", "type",
			"valencies", "oxidation_states", "electron_configuration",
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"elements": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    element,
			},
		},
		"required": []any{"version", "elements"},
	}
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values, not Go literals.
	defBytes, err := json.Marshal(documentSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateSchema checks the shape of a raw catalog document.
func validateSchema(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
