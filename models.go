package vertexclaude

// Claude model identifiers as published on Vertex AI. The version suffix
// after '@' is part of the model name in the endpoint URL.
const (
	ModelClaude35Sonnet = "claude-3-5-sonnet@20240620"
	ModelClaude3Opus    = "claude-3-opus@20240229"
	ModelClaude3Sonnet  = "claude-3-sonnet@20240229"
	ModelClaude3Haiku   = "claude-3-haiku@20240307"
)

// DefaultModel is used when a request does not name a model.
const DefaultModel = ModelClaude35Sonnet

// DefaultAnthropicVersion is the wire version Vertex AI expects in the
// request body instead of the anthropic-version HTTP header.
const DefaultAnthropicVersion = "vertex-2023-10-16"

// DefaultMaxTokens is the max_tokens fallback when params leave it unset.
// The Messages API requires the field on every request.
const DefaultMaxTokens = 4096
