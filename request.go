package vertexclaude

// GenerateRequest contains the parameters for a chat generation request.
type GenerateRequest struct {
	// Messages contains the conversation history.
	// Each message has a Role (user/assistant) and Blocks.
	Messages []Message

	// Model is the Vertex model identifier (e.g., "claude-3-5-sonnet@20240620")
	Model string

	// Params contains all request parameters (temperature, max_tokens, tools, etc.)
	// Backends extract what they support from this unified struct.
	Params *RequestParams
}

// Message represents a single message in the conversation.
type Message struct {
	// Role is either "user" or "assistant"
	Role string

	// Blocks is the list of content blocks for this message
	Blocks []*Block
}
