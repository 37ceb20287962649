package vertexclaude

import (
	"errors"
	"fmt"
)

// Tool declares a function the model may invoke. The schema follows the
// Anthropic tools format: a JSON Schema object describing the input.
type Tool struct {
	Name        string                 `json:"name"`                  // Unique tool name (required)
	Description string                 `json:"description,omitempty"` // What the tool does
	InputSchema map[string]interface{} `json:"input_schema"`          // JSON Schema for the input
}

// Validate checks if the Tool is properly configured
func (t *Tool) Validate() error {
	if t.Name == "" {
		return errors.New("tool name is required")
	}

	if t.InputSchema == nil {
		return errors.New("tool input_schema is required")
	}

	// Validate that input_schema is a valid JSON schema object
	if schemaType, ok := t.InputSchema["type"].(string); !ok || schemaType != "object" {
		return errors.New("tool input_schema must be a JSON schema with type 'object'")
	}

	return nil
}

// NewTool creates and validates a tool definition.
func NewTool(name, description string, inputSchema map[string]interface{}) (*Tool, error) {
	t := &Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool: %w", err)
	}

	return t, nil
}

// ObjectSchema is a convenience builder for the common schema shape:
// an object with named properties and a required list.
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
