package anthropic

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// ToolUseAggregationEvent accumulates the events of one tool-use window into
// finalized tool_use content blocks. At most one invocation is open at a
// time; its partial-JSON input buffer is append-only and is parsed exactly
// once, when the block-stop event arrives. A finalized entry is never
// mutated again.
type ToolUseAggregationEvent struct {
	index *int
	id    string
	name  string

	partialJSON strings.Builder
	open        bool

	toolUses []ContentBlock
}

// NewToolUseAggregationEvent returns a fresh accumulator. One is created per
// window; accumulators are never shared across windows or streams.
func NewToolUseAggregationEvent() *ToolUseAggregationEvent {
	return &ToolUseAggregationEvent{}
}

// Empty reports whether the accumulator has seen no tool-use events at all.
func (e *ToolUseAggregationEvent) Empty() bool {
	return !e.open && len(e.toolUses) == 0
}

// ToolUses returns the finalized tool_use content blocks in arrival order.
func (e *ToolUseAggregationEvent) ToolUses() []ContentBlock {
	return e.toolUses
}

// startInvocation opens a pending invocation keyed by the block's id and
// name. The input buffer starts empty.
func (e *ToolUseAggregationEvent) startInvocation(index *int, id, name string) {
	e.index = index
	e.id = id
	e.name = name
	e.partialJSON.Reset()
	e.open = true
}

// appendPartialJSON appends one input_json_delta fragment verbatim. The
// buffer is only valid JSON once the block-stop event has been observed;
// intermediate states must never be parsed.
func (e *ToolUseAggregationEvent) appendPartialJSON(fragment string) {
	e.partialJSON.WriteString(fragment)
}

// squash finalizes the open invocation: the accumulated buffer is parsed as
// JSON into the tool input map and the invocation is appended to the result
// list. Malformed JSON does not abort the stream; the invocation proceeds
// with empty input and the failure is surfaced at warning level. An empty
// buffer means a tool with no arguments and is not a parse failure.
func (e *ToolUseAggregationEvent) squash(logger *zap.Logger) {
	var input map[string]interface{}

	buffered := e.partialJSON.String()
	if buffered != "" {
		if err := json.Unmarshal([]byte(buffered), &input); err != nil {
			logger.Warn("malformed tool_use input JSON, proceeding with empty input",
				zap.String("tool_id", e.id),
				zap.String("tool_name", e.name),
				zap.Error(err))
			input = nil
		}
	}

	e.toolUses = append(e.toolUses, ContentBlock{
		Type:  ContentBlockTypeToolUse,
		ID:    e.id,
		Name:  e.name,
		Input: input,
	})

	e.id = ""
	e.name = ""
	e.partialJSON.Reset()
	e.open = false
}
