package vertexclaude

import (
	"context"
	"fmt"
)

// DefaultMaxToolIterations bounds the tool loop. Each iteration is one
// model round trip; hitting the bound is an error.
const DefaultMaxToolIterations = 10

// ToolLoopOptions configures RunToolLoop.
type ToolLoopOptions struct {
	// MaxIterations caps the number of model round trips
	// (default: DefaultMaxToolIterations).
	MaxIterations int
}

// RunToolLoop drives a tool-calling conversation to completion. It submits
// the request, and as long as the model stops with stop_reason "tool_use",
// executes every emitted tool_use block through the registry, appends the
// assistant turn and a user turn of tool_result blocks, and re-submits.
//
// The registry's tool definitions are placed on the request params; any
// tools already present on the params are kept ahead of them. The passed
// request is not mutated.
//
// A handler error becomes an is_error tool_result and the loop continues:
// the model sees the failure and decides how to proceed. An unregistered
// tool name aborts the loop with ErrUnknownTool, as does a tool_use stop
// with a nil registry (the request can carry tool definitions of its own,
// but only the registry can execute them).
func RunToolLoop(ctx context.Context, provider Provider, registry *ToolRegistry, req *GenerateRequest, opts *ToolLoopOptions) (*GenerateResponse, error) {
	maxIterations := DefaultMaxToolIterations
	if opts != nil && opts.MaxIterations > 0 {
		maxIterations = opts.MaxIterations
	}

	params := RequestParams{}
	if req.Params != nil {
		params = *req.Params
	}
	if registry != nil {
		params.Tools = append(append([]Tool(nil), params.Tools...), registry.Tools()...)
	}

	current := &GenerateRequest{
		Messages: append([]Message(nil), req.Messages...),
		Model:    req.Model,
		Params:   &params,
	}

	for i := 0; i < maxIterations; i++ {
		resp, err := provider.GenerateResponse(ctx, current)
		if err != nil {
			return nil, err
		}

		toolUses := resp.ToolUseBlocks()
		if resp.StopReason != "tool_use" || len(toolUses) == 0 {
			return resp, nil
		}

		if registry == nil {
			name, _ := toolUses[0].GetToolName()
			return nil, fmt.Errorf("%w: model requested %s but no tool registry was provided", ErrUnknownTool, name)
		}

		results := make([]*Block, 0, len(toolUses))
		for seq, block := range toolUses {
			id, _ := block.GetToolUseID()
			name, ok := block.GetToolName()
			if !ok {
				return nil, fmt.Errorf("tool_use block %s has no tool name", id)
			}

			input, _ := block.GetToolInput()
			output, err := registry.Execute(ctx, name, input)
			if err != nil {
				if !registry.IsRegistered(name) {
					return nil, err
				}
				results = append(results, NewToolResultBlock(seq, id, err.Error(), true))
				continue
			}
			results = append(results, NewToolResultBlock(seq, id, output, false))
		}

		current.Messages = append(current.Messages,
			NewAssistantMessage(resp.Blocks),
			Message{Role: "user", Blocks: results},
		)
	}

	return nil, fmt.Errorf("tool loop did not converge after %d iterations", maxIterations)
}
