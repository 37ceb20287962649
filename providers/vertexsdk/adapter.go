package vertexsdk

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mberga/vertexclaude-go"
)

// toolInputAsMap decodes a raw tool input into the map form the tool loop
// executes with. Unparseable input yields nil rather than an error: the SDK
// has already validated the wire payload.
func toolInputAsMap(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var input map[string]interface{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil
	}
	return input
}

// convertToSDKMessages converts library messages to SDK format.
func convertToSDKMessages(messages []vertexclaude.Message) ([]anthropic.MessageParam, error) {
	result := make([]anthropic.MessageParam, 0, len(messages))

	for i, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Blocks))

		for j, block := range msg.Blocks {
			switch block.BlockType {
			case vertexclaude.BlockTypeText:
				if block.TextContent == nil {
					return nil, fmt.Errorf("message %d, block %d: text block missing text_content", i, j)
				}
				blocks = append(blocks, anthropic.NewTextBlock(*block.TextContent))

			case vertexclaude.BlockTypeToolUse:
				toolUseID, ok := block.GetToolUseID()
				if !ok || toolUseID == "" {
					return nil, fmt.Errorf("message %d, block %d: tool_use block missing tool_use_id", i, j)
				}
				toolName, ok := block.GetToolName()
				if !ok || toolName == "" {
					return nil, fmt.Errorf("message %d, block %d: tool_use block missing tool_name", i, j)
				}
				input, _ := block.GetToolInput()
				blocks = append(blocks, anthropic.NewToolUseBlock(toolUseID, input, toolName))

			case vertexclaude.BlockTypeToolResult:
				toolUseID, ok := block.GetToolUseID()
				if !ok || toolUseID == "" {
					return nil, fmt.Errorf("message %d, block %d: tool_result block missing tool_use_id", i, j)
				}
				isError := false
				if errFlag, ok := block.Content["is_error"].(bool); ok {
					isError = errFlag
				}
				var resultContent string
				if block.TextContent != nil {
					resultContent = *block.TextContent
				}
				blocks = append(blocks, anthropic.NewToolResultBlock(toolUseID, resultContent, isError))

			case vertexclaude.BlockTypeThinking:
				// Internal reasoning, not replayed to the API.
				continue

			default:
				return nil, fmt.Errorf("message %d, block %d: unsupported block type '%s'", i, j, block.BlockType)
			}
		}

		var message anthropic.MessageParam
		switch msg.Role {
		case "user":
			message = anthropic.NewUserMessage(blocks...)
		case "assistant":
			message = anthropic.NewAssistantMessage(blocks...)
		default:
			return nil, fmt.Errorf("message %d: unsupported role '%s'", i, msg.Role)
		}

		result = append(result, message)
	}

	return result, nil
}

// convertSDKBlock converts a single SDK content block to library format.
// Shared by the streaming and non-streaming paths.
func convertSDKBlock(content anthropic.ContentBlockUnion, sequence int) *vertexclaude.Block {
	switch content.Type {
	case "text":
		return vertexclaude.NewTextBlock(sequence, content.Text)

	case "tool_use":
		// Input arrives as raw JSON from the SDK; the tool loop needs it as
		// a map.
		return vertexclaude.NewToolUseBlock(sequence, content.ID, content.Name, toolInputAsMap(content.Input))

	default:
		// Unknown block types (documents, provider extensions) are dropped.
		return nil
	}
}

// convertFromSDKResponse converts an SDK response to library format.
func convertFromSDKResponse(msg *anthropic.Message) *vertexclaude.GenerateResponse {
	blocks := make([]*vertexclaude.Block, 0, len(msg.Content))

	for i, content := range msg.Content {
		if block := convertSDKBlock(content, i); block != nil {
			blocks = append(blocks, block)
		}
	}

	return &vertexclaude.GenerateResponse{
		Blocks:       blocks,
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
		StopReason:   string(msg.StopReason),
		StopSequence: msg.StopSequence,
	}
}
