package vertexsdk

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mberga/vertexclaude-go"
)

// StreamResponse generates a streaming response from Claude.
// Returns a channel that emits StreamEvent as deltas arrive from the API.
func (p *Provider) StreamResponse(ctx context.Context, req *vertexclaude.GenerateRequest) (<-chan vertexclaude.StreamEvent, error) {
	if req.Model != "" && !p.SupportsModel(req.Model) {
		return nil, &vertexclaude.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not published for Anthropic on Vertex AI",
			Err:      vertexclaude.ErrInvalidModel,
		}
	}

	// Build SDK parameters (shared logic with GenerateResponse)
	apiParams, err := buildMessageParams(req)
	if err != nil {
		return nil, err
	}

	eventChan := make(chan vertexclaude.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(eventChan)

		stream := p.client.Messages.NewStreaming(ctx, apiParams)

		// Accumulator for final message metadata
		message := anthropic.Message{}

		for stream.Next() {
			event := stream.Current()

			if err := message.Accumulate(event); err != nil {
				eventChan <- vertexclaude.StreamEvent{
					Error: fmt.Errorf("failed to accumulate message: %w", err),
				}
				return
			}

			streamEvent, ok := transformSDKStreamEvent(event, &message)
			if !ok {
				continue
			}

			select {
			case <-ctx.Done():
				eventChan <- vertexclaude.StreamEvent{
					Error: ctx.Err(),
				}
				return
			case eventChan <- streamEvent:
			}
		}

		if err := stream.Err(); err != nil {
			eventChan <- vertexclaude.StreamEvent{
				Error: fmt.Errorf("vertexsdk: streaming error: %w", err),
			}
			return
		}

		eventChan <- vertexclaude.StreamEvent{
			Metadata: &vertexclaude.StreamMetadata{
				Model:        string(message.Model),
				InputTokens:  int(message.Usage.InputTokens),
				OutputTokens: int(message.Usage.OutputTokens),
				StopReason:   string(message.StopReason),
				StopSequence: message.StopSequence,
			},
		}
	}()

	return eventChan, nil
}

// transformSDKStreamEvent converts an SDK streaming event to a library
// StreamEvent. Events that carry nothing for the consumer (message_start,
// message_delta, ping) report ok=false and are skipped; metadata arrives in
// the final StreamMetadata event instead.
//
// A content_block_stop for a tool_use block emits the completed Block: its
// input JSON is only whole once the block has closed, so that is the first
// moment a consumer can act on the invocation.
func transformSDKStreamEvent(event anthropic.MessageStreamEventUnion, accumulated *anthropic.Message) (vertexclaude.StreamEvent, bool) {
	switch e := event.AsAny().(type) {
	case anthropic.ContentBlockStartEvent:
		blockType := string(e.ContentBlock.Type)
		delta := &vertexclaude.BlockDelta{
			BlockIndex: int(e.Index),
			BlockType:  &blockType, // Set BlockType pointer (signals block start)
		}

		switch e.ContentBlock.Type {
		case "text":
			delta.DeltaType = vertexclaude.DeltaTypeText

		case "thinking":
			delta.DeltaType = vertexclaude.DeltaTypeThinking

		case "tool_use":
			delta.DeltaType = vertexclaude.DeltaTypeToolCallStart
			if e.ContentBlock.ID != "" {
				toolID := e.ContentBlock.ID
				delta.ToolCallID = &toolID
			}
			if e.ContentBlock.Name != "" {
				toolName := e.ContentBlock.Name
				delta.ToolCallName = &toolName
			}
		}

		return vertexclaude.StreamEvent{Delta: delta}, true

	case anthropic.ContentBlockDeltaEvent:
		delta := &vertexclaude.BlockDelta{
			BlockIndex: int(e.Index),
		}

		switch e.Delta.Type {
		case "text_delta":
			delta.DeltaType = vertexclaude.DeltaTypeText
			text := e.Delta.Text
			delta.TextDelta = &text

		case "thinking_delta":
			delta.DeltaType = vertexclaude.DeltaTypeThinking
			text := e.Delta.Thinking
			delta.TextDelta = &text

		case "input_json_delta":
			delta.DeltaType = vertexclaude.DeltaTypeInputJSON
			jsonDelta := e.Delta.PartialJSON
			delta.InputJSONDelta = &jsonDelta

		default:
			return vertexclaude.StreamEvent{}, false
		}

		return vertexclaude.StreamEvent{Delta: delta}, true

	case anthropic.ContentBlockStopEvent:
		index := int(e.Index)
		if index < 0 || index >= len(accumulated.Content) {
			return vertexclaude.StreamEvent{}, false
		}
		content := accumulated.Content[index]
		if content.Type != "tool_use" {
			return vertexclaude.StreamEvent{}, false
		}
		return vertexclaude.StreamEvent{Block: convertSDKBlock(content, index)}, true

	default:
		// message_start, message_delta, message_stop: metadata only.
		return vertexclaude.StreamEvent{}, false
	}
}
