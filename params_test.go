package vertexclaude

import (
	"testing"
)

func TestValidateRequestParams_Temperature(t *testing.T) {
	tests := []struct {
		name        string
		temperature *float64
		wantErr     bool
	}{
		{"nil temperature is valid", nil, false},
		{"temperature 0.0", float64Ptr(0.0), false},
		{"temperature 1.0", float64Ptr(1.0), false},
		{"temperature 0.5", float64Ptr(0.5), false},
		{"temperature -0.1 is invalid", float64Ptr(-0.1), true},
		{"temperature 1.1 is invalid", float64Ptr(1.1), true},
		{"temperature 2.0 is invalid", float64Ptr(2.0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &RequestParams{
				Temperature: tt.temperature,
			}
			err := ValidateRequestParams(params)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestParams() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !IsInvalidRequest(err) {
				t.Error("validation error should be classified as invalid request")
			}
		})
	}
}

func TestValidateRequestParams_TopP(t *testing.T) {
	tests := []struct {
		name    string
		topP    *float64
		wantErr bool
	}{
		{"nil topP is valid", nil, false},
		{"topP 0.0", float64Ptr(0.0), false},
		{"topP 1.0", float64Ptr(1.0), false},
		{"topP 0.5", float64Ptr(0.5), false},
		{"topP -0.1 is invalid", float64Ptr(-0.1), true},
		{"topP 1.1 is invalid", float64Ptr(1.1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &RequestParams{
				TopP: tt.topP,
			}
			err := ValidateRequestParams(params)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestParams() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequestParams_TopK(t *testing.T) {
	tests := []struct {
		name    string
		topK    *int
		wantErr bool
	}{
		{"nil topK is valid", nil, false},
		{"topK 0 is valid", intPtr(0), false},
		{"topK 1", intPtr(1), false},
		{"topK 100", intPtr(100), false},
		{"topK -1 is invalid", intPtr(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &RequestParams{
				TopK: tt.topK,
			}
			err := ValidateRequestParams(params)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestParams() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequestParams_MaxTokens(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens *int
		wantErr   bool
	}{
		{"nil maxTokens is valid", nil, false},
		{"maxTokens 1", intPtr(1), false},
		{"maxTokens 4096", intPtr(4096), false},
		{"maxTokens 0 is invalid", intPtr(0), true},
		{"maxTokens -1 is invalid", intPtr(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &RequestParams{
				MaxTokens: tt.maxTokens,
			}
			err := ValidateRequestParams(params)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequestParams() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequestParams_Tools(t *testing.T) {
	valid := Tool{
		Name:        "get_weather",
		InputSchema: ObjectSchema(map[string]interface{}{"loc": map[string]interface{}{"type": "string"}}),
	}
	missingSchema := Tool{Name: "broken"}

	if err := ValidateRequestParams(&RequestParams{Tools: []Tool{valid}}); err != nil {
		t.Errorf("valid tool rejected: %v", err)
	}
	if err := ValidateRequestParams(&RequestParams{Tools: []Tool{missingSchema}}); err == nil {
		t.Error("tool without input_schema should be rejected")
	}
}

func TestValidateRequestParams_NilParams(t *testing.T) {
	if err := ValidateRequestParams(nil); err != nil {
		t.Errorf("nil params should be valid, got: %v", err)
	}
}

func TestRequestParams_GetMaxTokens(t *testing.T) {
	withValue := &RequestParams{MaxTokens: intPtr(1000)}
	if got := withValue.GetMaxTokens(4096); got != 1000 {
		t.Errorf("GetMaxTokens() = %d, want 1000", got)
	}

	empty := &RequestParams{}
	if got := empty.GetMaxTokens(4096); got != 4096 {
		t.Errorf("GetMaxTokens() default = %d, want 4096", got)
	}
}

func TestRequestParams_GetAnthropicVersion(t *testing.T) {
	empty := &RequestParams{}
	if got := empty.GetAnthropicVersion(); got != DefaultAnthropicVersion {
		t.Errorf("default version = %q, want %q", got, DefaultAnthropicVersion)
	}

	custom := &RequestParams{AnthropicVersion: stringPtr("vertex-2024-custom")}
	if got := custom.GetAnthropicVersion(); got != "vertex-2024-custom" {
		t.Errorf("custom version = %q", got)
	}
}
