package vertexapi

import (
	"context"
	"strings"

	"github.com/mberga/vertexclaude-go"
	"github.com/mberga/vertexclaude-go/anthropic"
)

// Provider implements the vertexclaude.Provider interface on top of the raw
// HTTPS client.
type Provider struct {
	client *Client
}

// NewProvider creates a raw-API Vertex provider.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() vertexclaude.ProviderID {
	return vertexclaude.ProviderVertexAPI
}

// SupportsModel returns true for Claude models published on Vertex. Known
// models are checked against the capability registry; unknown "claude-"
// names are accepted so new versions work before the registry catches up.
func (p *Provider) SupportsModel(model string) bool {
	if vertexclaude.GetCapabilityRegistry().SupportsModel(vertexclaude.PlatformVertexAnthropic, model) {
		return true
	}
	return strings.HasPrefix(model, "claude-")
}

// GenerateResponse generates a complete response via :rawPredict.
func (p *Provider) GenerateResponse(ctx context.Context, req *vertexclaude.GenerateRequest) (*vertexclaude.GenerateResponse, error) {
	if req.Model != "" && !p.SupportsModel(req.Model) {
		return nil, &vertexclaude.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not published for Anthropic on Vertex AI",
			Err:      vertexclaude.ErrInvalidModel,
		}
	}

	body, model, err := buildChatRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.ChatCompletion(ctx, model, body)
	if err != nil {
		return nil, err
	}

	return convertResponse(resp, model), nil
}

// StreamResponse generates a streaming response via :streamRawPredict.
//
// The reducer's output is cumulative: each increment carries the full
// content list so far. Only the blocks appended since the previous increment
// are translated into caller-facing events: text fragments become deltas,
// finished tool invocations arrive as completed blocks. Terminal metadata is
// taken from the last increment, which holds the final stop reason and
// usage.
func (p *Provider) StreamResponse(ctx context.Context, req *vertexclaude.GenerateRequest) (<-chan vertexclaude.StreamEvent, error) {
	if req.Model != "" && !p.SupportsModel(req.Model) {
		return nil, &vertexclaude.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not published for Anthropic on Vertex AI",
			Err:      vertexclaude.ErrInvalidModel,
		}
	}

	body, model, err := buildChatRequest(req)
	if err != nil {
		return nil, err
	}

	chunks, err := p.client.ChatCompletionStream(ctx, model, body)
	if err != nil {
		return nil, err
	}

	out := make(chan vertexclaude.StreamEvent, 100)

	go func() {
		defer close(out)

		seen := 0
		var last *anthropic.ChatCompletionResponse

		for chunk := range chunks {
			if chunk.Err != nil {
				out <- vertexclaude.StreamEvent{Error: chunk.Err}
				return
			}

			resp := chunk.Response
			last = resp

			for i := seen; i < len(resp.Content); i++ {
				block := resp.Content[i]
				switch block.Type {
				case anthropic.ContentBlockTypeText:
					text := block.Text
					blockType := vertexclaude.BlockTypeText
					out <- vertexclaude.StreamEvent{
						Delta: &vertexclaude.BlockDelta{
							BlockIndex: i,
							BlockType:  &blockType,
							DeltaType:  vertexclaude.DeltaTypeText,
							TextDelta:  &text,
						},
					}
				case anthropic.ContentBlockTypeToolUse:
					out <- vertexclaude.StreamEvent{
						Block: vertexclaude.NewToolUseBlock(i, block.ID, block.Name, block.Input),
					}
				}
			}
			seen = len(resp.Content)
		}

		if last == nil {
			// Connection dropped before any visible increment; nothing to
			// report beyond the closed channel.
			return
		}

		metadata := &vertexclaude.StreamMetadata{
			Model:        last.Model,
			StopReason:   last.StopReason,
			StopSequence: last.StopSequence,
		}
		if metadata.Model == "" {
			metadata.Model = model
		}
		if last.Usage != nil {
			metadata.InputTokens = last.Usage.InputTokens
			metadata.OutputTokens = last.Usage.OutputTokens
		}
		out <- vertexclaude.StreamEvent{Metadata: metadata}
	}()

	return out, nil
}
