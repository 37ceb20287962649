package vertexsdk

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mberga/vertexclaude-go"
)

// convertTools converts library tools to the SDK's custom tool format.
// The library schema is a full JSON Schema object; the SDK wants its pieces
// split out (properties, required, everything else as extra fields).
func convertTools(tools []vertexclaude.Tool) ([]anthropic.ToolUnionParam, error) {
	result := make([]anthropic.ToolUnionParam, 0, len(tools))

	for i, tool := range tools {
		if err := tool.Validate(); err != nil {
			return nil, fmt.Errorf("tool %d (%s): %w", i, tool.Name, err)
		}

		properties := tool.InputSchema["properties"]

		// Type can be elided (zero value) - it will marshal as "object"
		schema := anthropic.ToolInputSchemaParam{
			Properties:  properties,
			ExtraFields: make(map[string]any),
		}

		if required, ok := tool.InputSchema["required"].([]interface{}); ok {
			schema.Required = make([]string, len(required))
			for j, v := range required {
				if str, ok := v.(string); ok {
					schema.Required[j] = str
				}
			}
		} else if required, ok := tool.InputSchema["required"].([]string); ok {
			schema.Required = required
		}

		// Copy other schema fields (additionalProperties, etc.)
		for key, value := range tool.InputSchema {
			if key != "type" && key != "properties" && key != "required" {
				schema.ExtraFields[key] = value
			}
		}

		toolParam := anthropic.ToolUnionParamOfTool(schema, tool.Name)
		if tool.Description != "" {
			if toolParam.OfTool == nil {
				toolParam.OfTool = &anthropic.ToolParam{}
			}
			toolParam.OfTool.Description = anthropic.String(tool.Description)
		}

		result = append(result, toolParam)
	}

	return result, nil
}
