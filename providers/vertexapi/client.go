// Package vertexapi is the raw HTTPS backend for Claude on Vertex AI. It
// speaks the Anthropic Messages API directly through the platform's
// :rawPredict and :streamRawPredict endpoints, with Google
// application-default credentials for auth and SSE for streaming.
package vertexapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mberga/vertexclaude-go"
	"github.com/mberga/vertexclaude-go/anthropic"
)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	// doneSentinel terminates an SSE stream. It is stripped here and never
	// reaches the reducer.
	doneSentinel = "[DONE]"
)

// Config configures the raw Vertex AI client.
type Config struct {
	// ProjectID is the Google Cloud project (required).
	ProjectID string

	// Location is the Vertex region, e.g. "us-east5" (required).
	Location string

	// TokenSource supplies bearer tokens. Defaults to Google
	// application-default credentials with the cloud-platform scope.
	TokenSource oauth2.TokenSource

	// HTTPClient is used for all requests (default: http.DefaultClient).
	HTTPClient *http.Client

	// Logger receives warnings from the stream reducer (default: no-op).
	Logger *zap.Logger

	// BaseURL overrides the regional endpoint, for tests.
	BaseURL string
}

// Client calls the Vertex AI Anthropic publisher endpoints.
type Client struct {
	projectID   string
	location    string
	baseURL     string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a Vertex AI client. When cfg.TokenSource is nil,
// application-default credentials are resolved once here so that a missing
// credential surfaces at construction time rather than on the first call.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("vertexapi: project id is required")
	}
	if cfg.Location == "" {
		return nil, fmt.Errorf("vertexapi: location is required")
	}

	tokenSource := cfg.TokenSource
	if tokenSource == nil {
		ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("vertexapi: resolve default credentials: %w (%w)",
				err, vertexclaude.ErrInvalidCredentials)
		}
		tokenSource = ts
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s-aiplatform.googleapis.com", cfg.Location)
	}

	return &Client{
		projectID:   cfg.ProjectID,
		location:    cfg.Location,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		tokenSource: tokenSource,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// endpoint builds the publisher model URL. The model travels in the URL on
// Vertex, not in the request body.
func (c *Client) endpoint(model, verb string) string {
	return fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/anthropic/models/%s:%s",
		c.baseURL, c.projectID, c.location, model, verb)
}

// newRequest builds an authorized JSON POST.
func (c *Client) newRequest(ctx context.Context, url string, body *anthropic.ChatCompletionRequest) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("vertexapi: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("vertexapi: build request: %w", err)
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("vertexapi: fetch access token: %w (%w)",
			err, vertexclaude.ErrInvalidCredentials)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// ChatCompletion performs a blocking generation via :rawPredict.
func (c *Client) ChatCompletion(ctx context.Context, model string, body *anthropic.ChatCompletionRequest) (*anthropic.ChatCompletionResponse, error) {
	body.Stream = false

	req, err := c.newRequest(ctx, c.endpoint(model, "rawPredict"), body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &vertexclaude.ProviderError{
			Provider:  vertexclaude.ProviderVertexAPI.String(),
			Message:   err.Error(),
			Retryable: true,
			Err:       vertexclaude.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapStatusError(resp)
	}

	var out anthropic.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("vertexapi: decode response: %w", err)
	}
	return &out, nil
}

// ChatCompletionStream performs a streaming generation via :streamRawPredict
// and reduces the SSE event sequence into unified response increments. Each
// call runs its reduction on fresh per-stream state; the returned channel is
// closed when the stream ends.
func (c *Client) ChatCompletionStream(ctx context.Context, model string, body *anthropic.ChatCompletionRequest) (<-chan anthropic.StreamChunk, error) {
	body.Stream = true

	req, err := c.newRequest(ctx, c.endpoint(model, "streamRawPredict"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &vertexclaude.ProviderError{
			Provider:  vertexclaude.ProviderVertexAPI.String(),
			Message:   err.Error(),
			Retryable: true,
			Err:       vertexclaude.ErrProviderUnavailable,
		}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.mapStatusError(resp)
	}

	events := make(chan anthropic.StreamEvent)
	go c.readSSE(resp.Body, events)

	helper := anthropic.NewStreamHelper(c.logger)
	return helper.Reduce(events), nil
}

// readSSE decodes the SSE body into stream events. "event:" frame names are
// ignored (the JSON payload carries its own type tag) and the [DONE]
// sentinel ends the stream. A malformed payload is forwarded as an error
// event so the reducer terminates the visible sequence with it.
func (c *Client) readSSE(body io.ReadCloser, events chan<- anthropic.StreamEvent) {
	defer close(events)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "event:") || strings.HasPrefix(line, ":") {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == doneSentinel {
			return
		}

		event, err := anthropic.DecodeEvent([]byte(data))
		if err != nil {
			events <- anthropic.StreamEvent{
				Type:  anthropic.EventTypeError,
				Error: &anthropic.APIError{Type: "decode_error", Message: err.Error()},
			}
			return
		}
		events <- event
	}

	if err := scanner.Err(); err != nil {
		c.logger.Warn("sse stream terminated early", zap.Error(err))
	}
}

// mapStatusError converts a non-200 platform response into a ProviderError
// wrapping the matching sentinel. 529 is Anthropic's overloaded status.
func (c *Client) mapStatusError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(payload))
	if message == "" {
		message = resp.Status
	}

	providerErr := &vertexclaude.ProviderError{
		Provider:   vertexclaude.ProviderVertexAPI.String(),
		StatusCode: resp.StatusCode,
		Message:    message,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		providerErr.Err = vertexclaude.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		providerErr.Err = vertexclaude.ErrRateLimited
		providerErr.Retryable = true
	case resp.StatusCode == 529 || resp.StatusCode >= 500:
		providerErr.Err = vertexclaude.ErrProviderUnavailable
		providerErr.Retryable = true
	case resp.StatusCode == http.StatusNotFound:
		providerErr.Err = vertexclaude.ErrInvalidModel
	default:
		providerErr.Err = vertexclaude.ErrInvalidRequest
	}

	return providerErr
}
