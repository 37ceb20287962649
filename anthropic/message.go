package anthropic

// ChatCompletionRequest is the Messages API request body. The model is not
// part of the body on Vertex AI; it travels in the endpoint URL.
type ChatCompletionRequest struct {
	// AnthropicVersion selects the Vertex wire version (e.g. "vertex-2023-10-16").
	AnthropicVersion string `json:"anthropic_version"`

	Messages []RequestMessage `json:"messages"`

	// System is the system prompt, passed separately from the messages.
	System string `json:"system,omitempty"`

	MaxTokens     int      `json:"max_tokens"`
	Temperature   *float64 `json:"temperature,omitempty"`
	TopP          *float64 `json:"top_p,omitempty"`
	TopK          *int     `json:"top_k,omitempty"`
	StopSequences []string `json:"stop_sequences,omitempty"`
	Stream        bool     `json:"stream,omitempty"`
	Tools         []Tool   `json:"tools,omitempty"`
}

// RequestMessage is one conversation turn. Content is always the block array
// form; tool results are user-role blocks with type "tool_result".
type RequestMessage struct {
	Role    string         `json:"role"` // user or assistant
	Content []ContentBlock `json:"content"`
}

// Tool declares a function the model may invoke, with a JSON Schema for its
// input.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// ChatCompletionResponse is the unified response shape: the non-streaming
// Messages API response, and the reduced representation emitted by the
// stream reducer for each visible increment.
//
// Type is empty on reducer outputs that carry only header metadata; such
// responses are filtered from the caller-visible sequence.
type ChatCompletionResponse struct {
	ID           string         `json:"id,omitempty"`
	Type         string         `json:"type,omitempty"`
	Role         string         `json:"role,omitempty"`
	Content      []ContentBlock `json:"content,omitempty"`
	Model        string         `json:"model,omitempty"`
	StopReason   string         `json:"stop_reason,omitempty"`
	StopSequence string         `json:"stop_sequence,omitempty"`
	Usage        *Usage         `json:"usage,omitempty"`
}

// Text returns the concatenation of all text content blocks in arrival order.
func (r *ChatCompletionResponse) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == ContentBlockTypeText {
			out += block.Text
		}
	}
	return out
}

// ToolUses returns all tool_use content blocks in arrival order.
func (r *ChatCompletionResponse) ToolUses() []ContentBlock {
	var out []ContentBlock
	for _, block := range r.Content {
		if block.Type == ContentBlockTypeToolUse {
			out = append(out, block)
		}
	}
	return out
}
