package dataset

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/evalgate/evalgate/pkg/types"
)

// Dataset files share one shape: a top-level object with a test_cases
// array. The per-case required fields differ by system kind, so each
// kind compiles its own schema.
const ragSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["test_cases"],
	"properties": {
		"test_cases": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["input", "actual_output", "expected_output", "context"],
				"properties": {
					"input":           {"type": "string", "minLength": 1},
					"actual_output":   {"type": "string", "minLength": 1},
					"expected_output": {"type": "string", "minLength": 1},
					"context": {
						"type": "array",
						"items": {"type": "string"},
						"minItems": 1
					}
				}
			}
		}
	}
}`

const agentSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["test_cases"],
	"properties": {
		"test_cases": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["input", "actual_output", "expected_output"],
				"properties": {
					"input":           {"type": "string", "minLength": 1},
					"actual_output":   {"type": "string", "minLength": 1},
					"expected_output": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

const chatbotSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["test_cases"],
	"properties": {
		"test_cases": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["input", "actual_output"],
				"properties": {
					"input":         {"type": "string", "minLength": 1},
					"actual_output": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

func schemaSource(sys types.System) string {
	switch sys {
	case types.SystemRAG:
		return ragSchema
	case types.SystemAgent:
		return agentSchema
	case types.SystemChatbot:
		return chatbotSchema
	}
	return ""
}

func compileSchemas() (map[types.System]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[types.System]*jsonschema.Schema, 3)

	for _, sys := range []types.System{types.SystemRAG, types.SystemAgent, types.SystemChatbot} {
		name := string(sys) + "_dataset.schema.json"
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaSource(sys)))
		if err != nil {
			return nil, err
		}
		if err := compiler.AddResource(name, doc); err != nil {
			return nil, err
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, err
		}
		schemas[sys] = schema
	}
	return schemas, nil
}
