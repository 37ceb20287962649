package vertexclaude

// NewTextBlock creates a text block.
func NewTextBlock(sequence int, text string) *Block {
	return &Block{
		BlockType:   BlockTypeText,
		Sequence:    sequence,
		TextContent: &text,
	}
}

// NewToolUseBlock creates a tool_use block for an assistant turn.
func NewToolUseBlock(sequence int, toolUseID, toolName string, input map[string]interface{}) *Block {
	content := map[string]interface{}{
		"tool_use_id": toolUseID,
		"tool_name":   toolName,
	}
	if input != nil {
		content["input"] = input
	}
	return &Block{
		BlockType: BlockTypeToolUse,
		Sequence:  sequence,
		Content:   content,
	}
}

// NewToolResultBlock creates a tool_result block answering a tool_use block.
func NewToolResultBlock(sequence int, toolUseID, result string, isError bool) *Block {
	return &Block{
		BlockType:   BlockTypeToolResult,
		Sequence:    sequence,
		TextContent: &result,
		Content: map[string]interface{}{
			"tool_use_id": toolUseID,
			"is_error":    isError,
		},
	}
}

// NewUserMessage creates a user message with a single text block.
func NewUserMessage(text string) Message {
	return Message{
		Role:   "user",
		Blocks: []*Block{NewTextBlock(0, text)},
	}
}

// NewAssistantMessage creates an assistant message from response blocks.
func NewAssistantMessage(blocks []*Block) Message {
	return Message{
		Role:   "assistant",
		Blocks: blocks,
	}
}
