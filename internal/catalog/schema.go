package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// JSON Schemas for the embedded content files. Validation runs at load,
// before decoding, so a malformed catalog fails loudly in tests rather
// than surfacing as a half-decoded struct.

var quizzesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "title", "category", "difficulty", "questions"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"category":    map[string]any{"type": "string", "minLength": 1},
			"difficulty":  map[string]any{"enum": []any{"beginner", "intermediate", "advanced", "expert"}},
			"description": map[string]any{"type": "string"},
			"time_limit":  map[string]any{"type": "integer", "minimum": 0},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"prompt", "options", "answer", "points"},
					"properties": map[string]any{
						"prompt": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"maxItems": 4,
							"items":    map[string]any{"type": "string"},
						},
						"answer":      map[string]any{"type": "integer", "minimum": 0},
						"points":      map[string]any{"type": "integer", "minimum": 1},
						"explanation": map[string]any{"type": "string"},
					},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	},
}

var puzzlesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "title", "kind", "difficulty", "prompt", "solution", "points"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"kind":        map[string]any{"enum": []any{"riddle", "logic", "scramble", "memory"}},
			"difficulty":  map[string]any{"enum": []any{"beginner", "intermediate", "advanced", "expert"}},
			"description": map[string]any{"type": "string"},
			"time_limit":  map[string]any{"type": "integer", "minimum": 0},
			"prompt":      map[string]any{"type": "string", "minLength": 1},
			"hints":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"solution":    map[string]any{"type": "string", "minLength": 1},
			"points":      map[string]any{"type": "integer", "minimum": 1},
			"letters":     map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
			"sequence":    map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
		},
		"additionalProperties": false,
	},
}

var teasersSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "question", "answer"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1},
			"question": map[string]any{"type": "string", "minLength": 1},
			"answer":   map[string]any{"type": "string", "minLength": 1},
		},
		"additionalProperties": false,
	},
}

// validateAgainst validates raw JSON content against a schema definition.
func validateAgainst(name string, definition map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", name, err)
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("%s: marshal schema: %w", name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return fmt.Errorf("%s: parse schema: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return fmt.Errorf("%s: add resource: %w", name, err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("%s: compile schema: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	return nil
}
