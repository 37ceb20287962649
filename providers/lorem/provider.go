// Package lorem is a mock provider that generates lorem ipsum text. It lets
// streaming consumers and the tool loop be exercised without Google
// credentials or network access.
package lorem

import (
	"context"
	"fmt"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/google/uuid"

	"github.com/mberga/vertexclaude-go"
)

// Provider is a mock chat-model backend that generates lorem ipsum text.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() vertexclaude.ProviderID {
	return vertexclaude.ProviderLorem
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-slow", "lorem-test"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// getStreamDelay returns the delay between words based on the model name.
func getStreamDelay(model string) time.Duration {
	if strings.Contains(model, "slow") {
		return 500 * time.Millisecond // 2 words/second
	}
	if strings.Contains(model, "fast") {
		return 33 * time.Millisecond // 30 words/second
	}
	if strings.Contains(model, "test") {
		return 0 // no artificial latency in tests
	}
	return 100 * time.Millisecond
}

// GenerateResponse generates a complete lorem ipsum response. When tools are
// present on the request and the conversation does not already contain a
// tool_result, the response is a tool invocation of the first tool; this
// makes the provider usable for driving the tool loop end to end.
func (p *Provider) GenerateResponse(ctx context.Context, req *vertexclaude.GenerateRequest) (*vertexclaude.GenerateResponse, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &vertexclaude.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Lorem provider (must start with 'lorem-')",
			Err:      vertexclaude.ErrInvalidModel,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := req.Params
	if params == nil {
		params = &vertexclaude.RequestParams{}
	}

	inputTokens := p.estimateTokens(req.Messages)

	if len(params.Tools) > 0 && !hasToolResult(req.Messages) {
		tool := params.Tools[0]
		block := vertexclaude.NewToolUseBlock(0,
			"toolu_"+uuid.NewString(),
			tool.Name,
			mockToolInput(tool))
		return &vertexclaude.GenerateResponse{
			Blocks:       []*vertexclaude.Block{block},
			Model:        req.Model,
			InputTokens:  inputTokens,
			OutputTokens: 20,
			StopReason:   "tool_use",
		}, nil
	}

	text := p.generateTextWords(40)
	return &vertexclaude.GenerateResponse{
		Blocks:       []*vertexclaude.Block{vertexclaude.NewTextBlock(0, text)},
		Model:        req.Model,
		InputTokens:  inputTokens,
		OutputTokens: len(strings.Fields(text)),
		StopReason:   "end_turn",
	}, nil
}

// StreamResponse generates a streaming lorem ipsum response: one text block
// streamed word by word, then a completed tool_use block when tools are
// requested, then final metadata. Speed varies with the model name.
func (p *Provider) StreamResponse(ctx context.Context, req *vertexclaude.GenerateRequest) (<-chan vertexclaude.StreamEvent, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &vertexclaude.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Lorem provider (must start with 'lorem-')",
			Err:      vertexclaude.ErrInvalidModel,
		}
	}

	params := req.Params
	if params == nil {
		params = &vertexclaude.RequestParams{}
	}

	eventChan := make(chan vertexclaude.StreamEvent, 10)

	go func() {
		defer close(eventChan)

		stopReason := "end_turn"
		outputTokens, err := p.streamTextBlock(ctx, eventChan, 0, 30, req.Model)
		if err != nil {
			eventChan <- vertexclaude.StreamEvent{Error: err}
			return
		}

		if len(params.Tools) > 0 {
			tool := params.Tools[0]
			eventChan <- vertexclaude.StreamEvent{
				Block: vertexclaude.NewToolUseBlock(1,
					"toolu_"+uuid.NewString(),
					tool.Name,
					mockToolInput(tool)),
			}
			outputTokens += 20
			stopReason = "tool_use"
		}

		eventChan <- vertexclaude.StreamEvent{
			Metadata: &vertexclaude.StreamMetadata{
				Model:        req.Model,
				InputTokens:  p.estimateTokens(req.Messages),
				OutputTokens: outputTokens,
				StopReason:   stopReason,
			},
		}
	}()

	return eventChan, nil
}

// streamTextBlock streams one text block of targetWords words.
// Returns the word count.
func (p *Provider) streamTextBlock(ctx context.Context, eventChan chan<- vertexclaude.StreamEvent, blockIndex, targetWords int, model string) (int, error) {
	textType := vertexclaude.BlockTypeText
	words := strings.Fields(p.generateTextWords(targetWords))
	delay := getStreamDelay(model)

	wordsSent := 0
	for i, word := range words {
		select {
		case <-ctx.Done():
			return wordsSent, ctx.Err()
		default:
		}

		delta := word + " "
		blockDelta := &vertexclaude.BlockDelta{
			BlockIndex: blockIndex,
			DeltaType:  vertexclaude.DeltaTypeText,
			TextDelta:  &delta,
		}
		if i == 0 {
			blockDelta.BlockType = &textType
		}
		eventChan <- vertexclaude.StreamEvent{Delta: blockDelta}

		time.Sleep(delay)
		wordsSent++
	}

	return wordsSent, nil
}

// mockToolInput fabricates an input that names every declared property.
func mockToolInput(tool vertexclaude.Tool) map[string]interface{} {
	input := map[string]interface{}{}
	if properties, ok := tool.InputSchema["properties"].(map[string]interface{}); ok {
		for name := range properties {
			input[name] = "lorem"
		}
	}
	if len(input) == 0 {
		input["data"] = fmt.Sprintf("mock input for %s", tool.Name)
	}
	return input
}

// hasToolResult reports whether any message already carries a tool_result
// block, i.e. the conversation is past its first tool round trip.
func hasToolResult(messages []vertexclaude.Message) bool {
	for _, msg := range messages {
		for _, block := range msg.Blocks {
			if block.IsToolResultBlock() {
				return true
			}
		}
	}
	return false
}

// generateTextWords generates lorem ipsum text with approximately
// targetWords words.
func (p *Provider) generateTextWords(targetWords int) string {
	var sb strings.Builder
	wordCount := 0

	for wordCount < targetWords {
		sentence := p.generator.Sentence(5, 15)
		sb.WriteString(sentence)
		sb.WriteString(" ")
		wordCount += len(strings.Fields(sentence))
	}

	return strings.TrimSpace(sb.String())
}

// estimateTokens estimates the token count for a list of messages.
// Uses word count as a rough approximation.
func (p *Provider) estimateTokens(messages []vertexclaude.Message) int {
	totalWords := 0
	for _, msg := range messages {
		for _, block := range msg.Blocks {
			if block.TextContent != nil {
				totalWords += len(strings.Fields(*block.TextContent))
			}
		}
	}
	return totalWords
}
