package vertexclaude

// Block type constants
const (
	BlockTypeText       = "text"
	BlockTypeThinking   = "thinking" // Claude extended thinking
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result" // Result sent back from a caller-executed tool
)

// Block represents a content block within a conversation turn.
//
// User blocks: text, tool_result
// Assistant blocks: text, thinking, tool_use
//
// The Content field stores block-type-specific structured data as a map:
// - text: empty (text in TextContent field)
// - tool_use: {"tool_use_id": "toolu_...", "tool_name": "...", "input": {...}}
// - tool_result: {"tool_use_id": "toolu_...", "is_error": false}
type Block struct {
	// BlockType indicates the type of block
	// Values: "text", "thinking", "tool_use", "tool_result"
	BlockType string `json:"block_type"`

	// Sequence indicates the position of this block in the turn (0-indexed)
	Sequence int `json:"sequence"`

	// TextContent contains the text for text/thinking/tool_result blocks
	TextContent *string `json:"text_content,omitempty"`

	// Content contains type-specific structured data
	Content map[string]interface{} `json:"content,omitempty"`
}

// IsToolUseBlock returns true if this is a tool_use block
func (b *Block) IsToolUseBlock() bool {
	return b.BlockType == BlockTypeToolUse
}

// IsToolResultBlock returns true if this is a tool_result block
func (b *Block) IsToolResultBlock() bool {
	return b.BlockType == BlockTypeToolResult
}

// GetToolUseID returns the tool_use_id from a tool_use or tool_result block
func (b *Block) GetToolUseID() (string, bool) {
	if b.Content == nil {
		return "", false
	}
	id, ok := b.Content["tool_use_id"].(string)
	return id, ok
}

// GetToolName returns the tool_name from a tool_use block
func (b *Block) GetToolName() (string, bool) {
	if !b.IsToolUseBlock() || b.Content == nil {
		return "", false
	}
	name, ok := b.Content["tool_name"].(string)
	return name, ok
}

// GetToolInput returns the input from a tool_use block
func (b *Block) GetToolInput() (map[string]interface{}, bool) {
	if !b.IsToolUseBlock() || b.Content == nil {
		return nil, false
	}
	input, ok := b.Content["input"].(map[string]interface{})
	return input, ok
}

// Delta type constants for streaming events
const (
	DeltaTypeText          = "text_delta"       // Regular text content
	DeltaTypeThinking      = "thinking_delta"   // Thinking/reasoning text
	DeltaTypeToolCallStart = "tool_call_start"  // Tool call initiated (name, id)
	DeltaTypeInputJSON     = "input_json_delta" // Incremental JSON tool input
)

// BlockDelta represents an incremental update to a block during streaming.
// Deltas are ephemeral: they are accumulated in memory and never persisted.
//
// BlockType is optional and signals block starts:
//   - Set on the first delta for a block (acts as a block_start signal)
//   - Nil on subsequent deltas for the same block
type BlockDelta struct {
	// BlockIndex identifies which block this delta belongs to (0-indexed).
	// Matches the Sequence field in Block.
	BlockIndex int `json:"block_index"`

	// BlockType indicates the type of block being accumulated.
	// OPTIONAL: only set on the first delta for a block.
	BlockType *string `json:"block_type,omitempty"`

	// DeltaType indicates what kind of delta this is
	DeltaType string `json:"delta_type"`

	// TextDelta contains incremental text content (text or thinking blocks)
	TextDelta *string `json:"text_delta,omitempty"`

	// InputJSONDelta contains an incremental JSON fragment of a tool input
	InputJSONDelta *string `json:"input_json_delta,omitempty"`

	// ToolCallID identifies the tool call (set on tool_call_start)
	ToolCallID *string `json:"tool_call_id,omitempty"`

	// ToolCallName is the tool name (set on tool_call_start)
	ToolCallName *string `json:"tool_call_name,omitempty"`
}

// IsTextDelta returns true if this delta contains text content
func (d *BlockDelta) IsTextDelta() bool {
	return d.DeltaType == DeltaTypeText && d.TextDelta != nil
}

// IsBlockStart returns true if this delta signals the start of a new block
func (d *BlockDelta) IsBlockStart() bool {
	return d.BlockType != nil
}
