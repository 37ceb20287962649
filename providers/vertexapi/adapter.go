package vertexapi

import (
	"fmt"

	"github.com/mberga/vertexclaude-go"
	"github.com/mberga/vertexclaude-go/anthropic"
)

// buildChatRequest converts a library request into the Messages API body.
// The model is returned separately because Vertex carries it in the URL.
func buildChatRequest(req *vertexclaude.GenerateRequest) (*anthropic.ChatCompletionRequest, string, error) {
	if err := vertexclaude.ValidateRequestParams(req.Params); err != nil {
		return nil, "", err
	}

	model := req.Model
	if model == "" {
		model = vertexclaude.DefaultModel
	}

	params := req.Params
	if params == nil {
		params = &vertexclaude.RequestParams{}
	}

	out := &anthropic.ChatCompletionRequest{
		AnthropicVersion: params.GetAnthropicVersion(),
		MaxTokens:        params.GetMaxTokens(vertexclaude.DefaultMaxTokens),
		Temperature:      params.Temperature,
		TopP:             params.TopP,
		TopK:             params.TopK,
		StopSequences:    params.Stop,
	}
	if params.System != nil {
		out.System = *params.System
	}
	for _, tool := range params.Tools {
		out.Tools = append(out.Tools, anthropic.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}

	for i, msg := range req.Messages {
		wireMsg, err := convertMessage(msg)
		if err != nil {
			return nil, "", fmt.Errorf("messages[%d]: %w", i, err)
		}
		out.Messages = append(out.Messages, wireMsg)
	}
	if len(out.Messages) == 0 {
		return nil, "", &vertexclaude.ValidationError{
			Field:  "messages",
			Value:  0,
			Reason: "at least one message is required",
			Err:    vertexclaude.ErrInvalidRequest,
		}
	}

	return out, model, nil
}

// convertMessage maps one conversation turn to the wire form. Thinking
// blocks are internal reasoning and are not replayed to the API.
func convertMessage(msg vertexclaude.Message) (anthropic.RequestMessage, error) {
	out := anthropic.RequestMessage{Role: msg.Role}

	for _, block := range msg.Blocks {
		switch block.BlockType {
		case vertexclaude.BlockTypeText:
			text := ""
			if block.TextContent != nil {
				text = *block.TextContent
			}
			out.Content = append(out.Content, anthropic.ContentBlock{
				Type: anthropic.ContentBlockTypeText,
				Text: text,
			})

		case vertexclaude.BlockTypeToolUse:
			id, _ := block.GetToolUseID()
			name, ok := block.GetToolName()
			if !ok {
				return out, fmt.Errorf("tool_use block without tool name")
			}
			input, _ := block.GetToolInput()
			out.Content = append(out.Content, anthropic.ContentBlock{
				Type:  anthropic.ContentBlockTypeToolUse,
				ID:    id,
				Name:  name,
				Input: input,
			})

		case vertexclaude.BlockTypeToolResult:
			id, ok := block.GetToolUseID()
			if !ok {
				return out, fmt.Errorf("tool_result block without tool_use_id")
			}
			content := ""
			if block.TextContent != nil {
				content = *block.TextContent
			}
			isError, _ := block.Content["is_error"].(bool)
			out.Content = append(out.Content, anthropic.ContentBlock{
				Type:      "tool_result",
				ToolUseID: id,
				Content:   content,
				IsError:   isError,
			})

		case vertexclaude.BlockTypeThinking:
			continue

		default:
			return out, fmt.Errorf("unsupported block type: %s", block.BlockType)
		}
	}

	return out, nil
}

// convertResponse maps a wire response back to library blocks.
func convertResponse(resp *anthropic.ChatCompletionResponse, requestModel string) *vertexclaude.GenerateResponse {
	out := &vertexclaude.GenerateResponse{
		Model:        resp.Model,
		StopReason:   resp.StopReason,
		StopSequence: resp.StopSequence,
	}
	if out.Model == "" {
		out.Model = requestModel
	}
	if resp.Usage != nil {
		out.InputTokens = resp.Usage.InputTokens
		out.OutputTokens = resp.Usage.OutputTokens
	}

	for i, block := range resp.Content {
		switch block.Type {
		case anthropic.ContentBlockTypeText:
			out.Blocks = append(out.Blocks, vertexclaude.NewTextBlock(i, block.Text))
		case anthropic.ContentBlockTypeToolUse:
			out.Blocks = append(out.Blocks, vertexclaude.NewToolUseBlock(i, block.ID, block.Name, block.Input))
		}
	}

	return out
}
