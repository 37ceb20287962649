package vertexclaude

import (
	"context"
)

// Provider defines the interface implemented by every chat-model backend.
// The two Vertex AI backends (raw HTTPS API and vendor SDK) and the lorem
// mock all satisfy it, so callers can swap transports without code changes.
//
// Types used by this interface:
//   - GenerateRequest, Message: defined in request.go
//   - GenerateResponse: defined in response.go
//   - StreamEvent: defined in streaming.go
type Provider interface {
	// GenerateResponse generates a complete response (blocking).
	// It takes conversation context (messages) and returns content blocks.
	GenerateResponse(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// StreamResponse generates a streaming response (non-blocking).
	// Returns a channel that emits StreamEvent as they arrive.
	// The channel is closed when streaming completes or encounters an error.
	// Metadata (tokens, stop_reason) is sent in the final StreamMetadata event.
	//
	// Usage:
	//   eventChan, err := provider.StreamResponse(ctx, req)
	//   if err != nil { return err }
	//   for event := range eventChan {
	//     if event.Error != nil { handle error }
	//     if event.Delta != nil { process delta }
	//     if event.Block != nil { completed block (tool calls arrive here) }
	//     if event.Metadata != nil { streaming complete }
	//   }
	StreamResponse(ctx context.Context, req *GenerateRequest) (<-chan StreamEvent, error)

	// Name returns the provider identifier
	Name() ProviderID

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}
