// Package vertexsdk is the vendor SDK backend for Claude on Vertex AI,
// built on anthropic-sdk-go with its Vertex integration. The SDK owns the
// wire protocol and SSE handling; this package converts between the library
// types and the SDK's.
package vertexsdk

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/vertex"

	"github.com/mberga/vertexclaude-go"
)

// Config configures the SDK-backed provider.
type Config struct {
	// ProjectID is the Google Cloud project (required).
	ProjectID string

	// Region is the Vertex region, e.g. "us-east5" (required).
	Region string
}

// Provider implements the vertexclaude.Provider interface via the Anthropic
// SDK's Vertex backend.
type Provider struct {
	client *anthropic.Client
}

// NewProvider creates an SDK-backed Vertex provider. Credentials come from
// Google application-default credentials, resolved by the SDK.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("vertexsdk: project id is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("vertexsdk: region is required")
	}

	client := anthropic.NewClient(vertex.WithGoogleAuth(ctx, cfg.Region, cfg.ProjectID))

	return &Provider{
		client: &client,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() vertexclaude.ProviderID {
	return vertexclaude.ProviderVertexSDK
}

// SupportsModel returns true for Claude models published on Vertex.
func (p *Provider) SupportsModel(model string) bool {
	if vertexclaude.GetCapabilityRegistry().SupportsModel(vertexclaude.PlatformVertexAnthropic, model) {
		return true
	}
	return strings.HasPrefix(model, "claude-")
}

// GenerateResponse generates a complete response from Claude.
func (p *Provider) GenerateResponse(ctx context.Context, req *vertexclaude.GenerateRequest) (*vertexclaude.GenerateResponse, error) {
	if req.Model != "" && !p.SupportsModel(req.Model) {
		return nil, &vertexclaude.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not published for Anthropic on Vertex AI",
			Err:      vertexclaude.ErrInvalidModel,
		}
	}

	// Build SDK parameters (shared logic with StreamResponse)
	apiParams, err := buildMessageParams(req)
	if err != nil {
		return nil, err
	}

	message, err := p.client.Messages.New(ctx, apiParams)
	if err != nil {
		return nil, fmt.Errorf("vertexsdk: API call failed: %w", err)
	}

	return convertFromSDKResponse(message), nil
}
