package vertexsdk

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mberga/vertexclaude-go"
)

func TestConvertToSDKMessages(t *testing.T) {
	messages := []vertexclaude.Message{
		vertexclaude.NewUserMessage("Weather in SF?"),
		vertexclaude.NewAssistantMessage([]*vertexclaude.Block{
			vertexclaude.NewTextBlock(0, "Let me check."),
			vertexclaude.NewToolUseBlock(1, "toolu_01", "get_weather", map[string]interface{}{"loc": "SF"}),
		}),
		{
			Role: "user",
			Blocks: []*vertexclaude.Block{
				vertexclaude.NewToolResultBlock(0, "toolu_01", "sunny, 20C", false),
			},
		},
	}

	result, err := convertToSDKMessages(messages)
	if err != nil {
		t.Fatalf("convertToSDKMessages() error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(result))
	}
	if result[0].Role != "user" || result[1].Role != "assistant" || result[2].Role != "user" {
		t.Errorf("roles = %s/%s/%s", result[0].Role, result[1].Role, result[2].Role)
	}
	if len(result[1].Content) != 2 {
		t.Errorf("assistant turn has %d blocks, want 2", len(result[1].Content))
	}
}

func TestConvertToSDKMessagesSkipsThinking(t *testing.T) {
	thinking := "internal reasoning"
	messages := []vertexclaude.Message{
		vertexclaude.NewAssistantMessage([]*vertexclaude.Block{
			{BlockType: vertexclaude.BlockTypeThinking, TextContent: &thinking},
			vertexclaude.NewTextBlock(1, "The answer is 4."),
		}),
	}

	result, err := convertToSDKMessages(messages)
	if err != nil {
		t.Fatalf("convertToSDKMessages() error: %v", err)
	}
	if len(result[0].Content) != 1 {
		t.Errorf("thinking block should be dropped, got %d blocks", len(result[0].Content))
	}
}

func TestConvertToSDKMessagesRejectsBadBlocks(t *testing.T) {
	tests := []struct {
		name     string
		messages []vertexclaude.Message
	}{
		{
			"text block without content",
			[]vertexclaude.Message{{Role: "user", Blocks: []*vertexclaude.Block{
				{BlockType: vertexclaude.BlockTypeText},
			}}},
		},
		{
			"tool_use without id",
			[]vertexclaude.Message{{Role: "assistant", Blocks: []*vertexclaude.Block{
				{BlockType: vertexclaude.BlockTypeToolUse, Content: map[string]interface{}{"tool_name": "x"}},
			}}},
		},
		{
			"tool_result without id",
			[]vertexclaude.Message{{Role: "user", Blocks: []*vertexclaude.Block{
				{BlockType: vertexclaude.BlockTypeToolResult, Content: map[string]interface{}{}},
			}}},
		},
		{
			"unknown role",
			[]vertexclaude.Message{{Role: "system", Blocks: nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := convertToSDKMessages(tt.messages); err == nil {
				t.Error("expected conversion error")
			}
		})
	}
}

func TestConvertFromSDKResponse(t *testing.T) {
	msg := &anthropic.Message{
		Model: "claude-3-5-sonnet@20240620",
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "Checking."},
			{Type: "tool_use", ID: "toolu_02", Name: "get_weather", Input: json.RawMessage(`{"loc":"SF"}`)},
		},
		StopReason: "tool_use",
		Usage:      anthropic.Usage{InputTokens: 30, OutputTokens: 11},
	}

	resp := convertFromSDKResponse(msg)

	if got := resp.Text(); got != "Checking." {
		t.Errorf("text = %q", got)
	}
	toolBlocks := resp.ToolUseBlocks()
	if len(toolBlocks) != 1 {
		t.Fatalf("expected 1 tool block, got %d", len(toolBlocks))
	}
	input, _ := toolBlocks[0].GetToolInput()
	if loc, _ := input["loc"].(string); loc != "SF" {
		t.Errorf("tool input = %v", input)
	}
	if resp.StopReason != "tool_use" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if resp.InputTokens != 30 || resp.OutputTokens != 11 {
		t.Errorf("usage = %d/%d", resp.InputTokens, resp.OutputTokens)
	}
}

func TestToolInputAsMap(t *testing.T) {
	if got := toolInputAsMap(nil); got != nil {
		t.Errorf("nil input = %v", got)
	}
	if got := toolInputAsMap(json.RawMessage(`not json`)); got != nil {
		t.Errorf("invalid input = %v", got)
	}
	got := toolInputAsMap(json.RawMessage(`{"a": 1}`))
	if a, _ := got["a"].(float64); a != 1 {
		t.Errorf("parsed input = %v", got)
	}
}

func TestConvertTools(t *testing.T) {
	tools := []vertexclaude.Tool{
		{
			Name:        "get_weather",
			Description: "Current weather",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"loc": map[string]interface{}{"type": "string"},
				},
				"required": []interface{}{"loc"},
			},
		},
	}

	result, err := convertTools(tools)
	if err != nil {
		t.Fatalf("convertTools() error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(result))
	}

	param := result[0].OfTool
	if param == nil {
		t.Fatal("expected custom tool param")
	}
	if param.Name != "get_weather" {
		t.Errorf("tool name = %q", param.Name)
	}
	if len(param.InputSchema.Required) != 1 || param.InputSchema.Required[0] != "loc" {
		t.Errorf("required = %v", param.InputSchema.Required)
	}
}

func TestConvertToolsRejectsInvalid(t *testing.T) {
	if _, err := convertTools([]vertexclaude.Tool{{Name: "broken"}}); err == nil {
		t.Error("tool without schema should fail conversion")
	}
}

func TestBuildMessageParams(t *testing.T) {
	req := &vertexclaude.GenerateRequest{
		Messages: []vertexclaude.Message{vertexclaude.NewUserMessage("Hi")},
		Model:    vertexclaude.ModelClaude3Haiku,
		Params: &vertexclaude.RequestParams{
			MaxTokens:   intPtr(512),
			Temperature: float64Ptr(0.3),
			System:      stringPtr("Be brief."),
			Stop:        []string{"END"},
		},
	}

	params, err := buildMessageParams(req)
	if err != nil {
		t.Fatalf("buildMessageParams() error: %v", err)
	}
	if string(params.Model) != vertexclaude.ModelClaude3Haiku {
		t.Errorf("model = %q", params.Model)
	}
	if params.MaxTokens != 512 {
		t.Errorf("max tokens = %d", params.MaxTokens)
	}
	if len(params.System) != 1 || params.System[0].Text != "Be brief." {
		t.Errorf("system = %+v", params.System)
	}
	if len(params.StopSequences) != 1 {
		t.Errorf("stop sequences = %v", params.StopSequences)
	}
}

func TestBuildMessageParamsValidates(t *testing.T) {
	req := &vertexclaude.GenerateRequest{
		Messages: []vertexclaude.Message{vertexclaude.NewUserMessage("Hi")},
		Model:    vertexclaude.ModelClaude3Haiku,
		Params:   &vertexclaude.RequestParams{Temperature: float64Ptr(3.0)},
	}

	_, err := buildMessageParams(req)
	if err == nil {
		t.Fatal("out-of-range temperature should fail")
	}
	if !vertexclaude.IsInvalidRequest(err) {
		t.Errorf("error not classified as invalid request: %v", err)
	}
}

func intPtr(i int) *int             { return &i }
func float64Ptr(f float64) *float64 { return &f }
func stringPtr(s string) *string    { return &s }
