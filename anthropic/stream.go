package anthropic

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Sentinel errors for stream reduction failures. These can be checked with
// errors.Is().
var (
	// ErrProtocolViolation indicates the event sequence broke the streaming
	// contract (e.g. an input JSON delta with no open tool invocation). The
	// fold cannot continue safely.
	ErrProtocolViolation = errors.New("anthropic: stream protocol violation")

	// ErrUnsupportedEvent indicates an event or content block type the
	// reducer cannot classify. Fatal to the current stream.
	ErrUnsupportedEvent = errors.New("anthropic: unsupported stream event")
)

// StreamChunk is one element of the reduced output sequence: either a
// unified response increment or a terminal stream error.
type StreamChunk struct {
	Response *ChatCompletionResponse
	Err      error
}

// StreamHelper reduces a decoded stream-event sequence into unified
// ChatCompletionResponse values. The helper itself is stateless and safe to
// share; all per-stream state (windowing flag, aggregator, response builder)
// is created fresh inside Reduce for every stream.
type StreamHelper struct {
	logger *zap.Logger
}

// NewStreamHelper creates a stream helper. A nil logger defaults to a no-op
// logger.
func NewStreamHelper(logger *zap.Logger) *StreamHelper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamHelper{logger: logger}
}

// IsToolUseStart reports whether the event opens a tool_use content block.
func (h *StreamHelper) IsToolUseStart(event *StreamEvent) bool {
	return event.Type == EventTypeContentBlockStart &&
		event.ContentBlock != nil &&
		event.ContentBlock.Type == ContentBlockTypeToolUse
}

// IsToolUseFinish reports whether the event closes a content block.
func (h *StreamHelper) IsToolUseFinish(event *StreamEvent) bool {
	return event.Type == EventTypeContentBlockStop
}

// toolWindow implements the grouping policy: while outside a tool block
// every event forms its own window; a tool-use start opens a window that
// closes only at the matching block-stop event.
type toolWindow struct {
	insideTool bool
}

// closes reports whether the current window closes after this event.
func (w *toolWindow) closes(h *StreamHelper, event *StreamEvent) bool {
	if !w.insideTool && h.IsToolUseStart(event) {
		w.insideTool = true
	}
	if w.insideTool && h.IsToolUseFinish(event) {
		w.insideTool = false
		return true
	}
	return !w.insideTool
}

// MergeToolUseEvents is the per-window merge step. Tool-use events fold into
// the accumulator; the block-stop event of a non-empty accumulator yields a
// synthesized tool_use_aggregate event. All other events pass through
// unchanged (their windows are singletons).
func (h *StreamHelper) MergeToolUseEvents(acc *ToolUseAggregationEvent, event *StreamEvent) (*StreamEvent, error) {
	switch event.Type {
	case EventTypeContentBlockStart:
		if event.ContentBlock != nil && event.ContentBlock.Type == ContentBlockTypeToolUse {
			if acc.open {
				return nil, fmt.Errorf("%w: tool_use block started while another invocation is open", ErrProtocolViolation)
			}
			acc.startInvocation(event.Index, event.ContentBlock.ID, event.ContentBlock.Name)
		}
		return event, nil

	case EventTypeContentBlockDelta:
		if event.Delta != nil && event.Delta.Type == DeltaTypeInputJSONDelta {
			if !acc.open {
				return nil, fmt.Errorf("%w: input_json_delta with no open tool invocation", ErrProtocolViolation)
			}
			acc.appendPartialJSON(event.Delta.PartialJSON)
		}
		return event, nil

	case EventTypeContentBlockStop:
		if acc.open {
			acc.squash(h.logger)
		}
		if !acc.Empty() {
			return &StreamEvent{Type: EventTypeToolUseAggregate, aggregate: acc}, nil
		}
		return event, nil

	default:
		return event, nil
	}
}

// ChatCompletionResponseBuilder is the carried-forward accumulator of one
// stream: the protocol delivers top-level metadata only on specific event
// types, so id/model/role arrive on message_start, stop reason and usage on
// message_delta, and content blocks in between. One builder is owned by
// exactly one reduction pipeline and must be created fresh per stream.
type ChatCompletionResponseBuilder struct {
	id           string
	role         string
	model        string
	stopReason   string
	stopSequence string
	usage        Usage
	content      []ContentBlock
	started      bool
}

func (b *ChatCompletionResponseBuilder) start(message *ChatCompletionResponse) {
	b.started = true
	if message == nil {
		return
	}
	b.id = message.ID
	b.role = message.Role
	b.model = message.Model
	if message.Usage != nil {
		b.usage = *message.Usage
	}
}

// build materializes the current accumulated state. An empty responseType
// marks a metadata-only response that is dropped from the visible sequence.
func (b *ChatCompletionResponseBuilder) build(responseType string) *ChatCompletionResponse {
	resp := &ChatCompletionResponse{
		ID:           b.id,
		Type:         responseType,
		Role:         b.role,
		Model:        b.model,
		StopReason:   b.stopReason,
		StopSequence: b.stopSequence,
	}
	if len(b.content) > 0 {
		resp.Content = append([]ContentBlock(nil), b.content...)
	}
	if b.usage != (Usage{}) {
		usage := b.usage
		resp.Usage = &usage
	}
	return resp
}

// EventToChatCompletionResponse folds one merged event into the builder and
// returns the response for this step. Responses with an empty Type carry
// only header metadata and are filtered by the caller.
func (h *StreamHelper) EventToChatCompletionResponse(event *StreamEvent, builder *ChatCompletionResponseBuilder) (*ChatCompletionResponse, error) {
	if event.Type == EventTypeError {
		if event.Error != nil {
			return nil, event.Error
		}
		return nil, fmt.Errorf("%w: error event with no payload", ErrUnsupportedEvent)
	}

	if !builder.started {
		if event.Type != EventTypeMessageStart {
			return nil, fmt.Errorf("%w: %s event before message_start", ErrProtocolViolation, event.Type)
		}
		builder.start(event.Message)
		return builder.build(""), nil
	}

	switch event.Type {
	case EventTypeMessageStart:
		// A second header resets the stream state (the protocol sends one
		// per message; tolerate it the way the wire does).
		builder.start(event.Message)
		return builder.build(""), nil

	case EventTypeContentBlockStart:
		if event.ContentBlock == nil || event.ContentBlock.Type != ContentBlockTypeText {
			blockType := "<none>"
			if event.ContentBlock != nil {
				blockType = event.ContentBlock.Type
			}
			return nil, fmt.Errorf("%w: content block type %q", ErrUnsupportedEvent, blockType)
		}
		builder.content = append(builder.content, ContentBlock{
			Type: ContentBlockTypeText,
			Text: event.ContentBlock.Text,
		})
		return builder.build(""), nil

	case EventTypeContentBlockDelta:
		if event.Delta == nil || event.Delta.Type != DeltaTypeTextDelta {
			deltaType := "<none>"
			if event.Delta != nil {
				deltaType = event.Delta.Type
			}
			if deltaType == DeltaTypeInputJSONDelta {
				// Reached only when the delta was outside a tool window.
				return nil, fmt.Errorf("%w: input_json_delta with no open tool invocation", ErrProtocolViolation)
			}
			return nil, fmt.Errorf("%w: content delta type %q", ErrUnsupportedEvent, deltaType)
		}
		builder.content = append(builder.content, ContentBlock{
			Type: ContentBlockTypeText,
			Text: event.Delta.Text,
		})
		return builder.build("message"), nil

	case EventTypeToolUseAggregate:
		builder.content = append(builder.content, event.aggregate.ToolUses()...)
		return builder.build("message"), nil

	case EventTypeContentBlockStop:
		return builder.build(""), nil

	case EventTypeMessageDelta:
		if event.Delta != nil {
			if event.Delta.StopReason != "" {
				builder.stopReason = event.Delta.StopReason
			}
			if event.Delta.StopSequence != "" {
				builder.stopSequence = event.Delta.StopSequence
			}
		}
		if event.Usage != nil {
			// Later usage values win; absent counters keep their last value.
			if event.Usage.InputTokens > 0 {
				builder.usage.InputTokens = event.Usage.InputTokens
			}
			if event.Usage.OutputTokens > 0 {
				builder.usage.OutputTokens = event.Usage.OutputTokens
			}
		}
		return builder.build("message"), nil

	case EventTypeMessageStop:
		return builder.build(""), nil

	case EventTypePing:
		return builder.build(""), nil

	default:
		return nil, fmt.Errorf("%w: event type %q", ErrUnsupportedEvent, event.Type)
	}
}

// Reduce folds the event sequence into the caller-visible response sequence:
// ping events are dropped, tool-use blocks are windowed and merged into a
// single increment each, every other event forms its own window, and
// metadata-only responses are suppressed. The fold is strictly sequential
// and single-pass; responses preserve the arrival order of their triggering
// events.
//
// A protocol violation or unclassifiable event terminates the output with a
// chunk carrying the error. If the input channel closes early (connection
// drop), the output simply closes: partial state is discarded and no
// synthetic terminal response is fabricated.
func (h *StreamHelper) Reduce(events <-chan StreamEvent) <-chan StreamChunk {
	out := make(chan StreamChunk)

	go func() {
		defer close(out)

		window := toolWindow{}
		builder := &ChatCompletionResponseBuilder{}
		acc := NewToolUseAggregationEvent()

		for event := range events {
			if event.Type == EventTypePing {
				continue
			}

			merged, err := h.MergeToolUseEvents(acc, &event)
			if err != nil {
				out <- StreamChunk{Err: err}
				return
			}

			if !window.closes(h, &event) {
				// Window still open: keep folding tool-use events.
				continue
			}

			response, err := h.EventToChatCompletionResponse(merged, builder)
			if err != nil {
				out <- StreamChunk{Err: err}
				return
			}
			if response.Type != "" {
				out <- StreamChunk{Response: response}
			}

			acc = NewToolUseAggregationEvent()
		}
	}()

	return out
}
