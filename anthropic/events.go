// Package anthropic defines the wire model of the Anthropic Messages API as
// served by Vertex AI, and the stream reduction machinery that turns a
// decoded server-sent-event sequence into unified ChatCompletionResponse
// values.
//
// The wire shapes follow the Messages API:
// https://docs.anthropic.com/en/api/messages-streaming
package anthropic

import (
	"encoding/json"
	"fmt"
)

// EventType identifies a streaming event variant.
type EventType string

const (
	EventTypeMessageStart      EventType = "message_start"
	EventTypeContentBlockStart EventType = "content_block_start"
	EventTypeContentBlockDelta EventType = "content_block_delta"
	EventTypeContentBlockStop  EventType = "content_block_stop"
	EventTypeMessageDelta      EventType = "message_delta"
	EventTypeMessageStop       EventType = "message_stop"
	EventTypePing              EventType = "ping"
	EventTypeError             EventType = "error"

	// EventTypeToolUseAggregate is synthesized by the stream reducer when a
	// whole tool_use block has been merged. It never appears on the wire.
	EventTypeToolUseAggregate EventType = "tool_use_aggregate"
)

// Content block types.
const (
	ContentBlockTypeText    = "text"
	ContentBlockTypeToolUse = "tool_use"
)

// Delta types carried by content_block_delta events.
const (
	DeltaTypeTextDelta      = "text_delta"
	DeltaTypeInputJSONDelta = "input_json_delta"
)

// StreamEvent is one decoded streaming event. The Type tag discriminates the
// variant; only the fields relevant to that variant are populated.
type StreamEvent struct {
	Type EventType `json:"type"`

	// Message carries the message header on message_start (id, model, role,
	// initial usage).
	Message *ChatCompletionResponse `json:"message,omitempty"`

	// Index is the content block index for content_block_* events.
	Index *int `json:"index,omitempty"`

	// ContentBlock carries the declared block on content_block_start. For
	// tool_use blocks it holds the tool id and name.
	ContentBlock *ContentBlock `json:"content_block,omitempty"`

	// Delta carries the incremental payload on content_block_delta (text or
	// partial JSON) and the stop reason/sequence on message_delta.
	Delta *EventDelta `json:"delta,omitempty"`

	// Usage carries incremental token counters on message_delta.
	Usage *Usage `json:"usage,omitempty"`

	// Error carries the payload of an error event.
	Error *APIError `json:"error,omitempty"`

	// aggregate is set only on synthesized tool_use_aggregate events.
	aggregate *ToolUseAggregationEvent
}

// EventDelta is the delta payload of content_block_delta and message_delta
// events.
type EventDelta struct {
	Type         string `json:"type,omitempty"` // text_delta or input_json_delta
	Text         string `json:"text,omitempty"`
	PartialJSON  string `json:"partial_json,omitempty"`
	StopReason   string `json:"stop_reason,omitempty"`
	StopSequence string `json:"stop_sequence,omitempty"`
}

// APIError is the payload of a wire-level error event.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic: api error (%s): %s", e.Type, e.Message)
}

// Usage holds token counters. On message_start both fields are present; on
// message_delta only output_tokens is sent.
type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
}

// ContentBlock is a unit of model output: plain text or a tool invocation.
// The same shape is used in requests for tool_result blocks.
type ContentBlock struct {
	Type string `json:"type"`

	// Text blocks.
	Text string `json:"text,omitempty"`

	// Tool use blocks.
	ID    string                 `json:"id,omitempty"`
	Name  string                 `json:"name,omitempty"`
	Input map[string]interface{} `json:"input,omitempty"`

	// Tool result blocks (request side only).
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

// DecodeEvent parses one SSE data payload into a StreamEvent. Only the
// structural shape is checked here; semantic validation (sequencing, known
// event types) belongs to the reducer.
func DecodeEvent(data []byte) (StreamEvent, error) {
	var event StreamEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return StreamEvent{}, fmt.Errorf("anthropic: decode stream event: %w", err)
	}
	return event, nil
}
