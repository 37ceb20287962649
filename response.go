package vertexclaude

// GenerateResponse contains the chat model's response.
type GenerateResponse struct {
	// Blocks is the list of content blocks returned by the model
	Blocks []*Block

	// Model is the model that was used
	Model string

	// InputTokens is the number of tokens in the input
	InputTokens int

	// OutputTokens is the number of tokens in the output
	OutputTokens int

	// StopReason indicates why generation stopped (e.g., "end_turn", "max_tokens", "tool_use")
	StopReason string

	// StopSequence is the matched stop sequence, if generation stopped on one
	StopSequence string
}

// ToolUseBlocks returns the tool_use blocks of the response in order.
func (r *GenerateResponse) ToolUseBlocks() []*Block {
	var out []*Block
	for _, block := range r.Blocks {
		if block.IsToolUseBlock() {
			out = append(out, block)
		}
	}
	return out
}

// Text returns the concatenated text content of the response.
func (r *GenerateResponse) Text() string {
	var out string
	for _, block := range r.Blocks {
		if block.BlockType == BlockTypeText && block.TextContent != nil {
			out += *block.TextContent
		}
	}
	return out
}
