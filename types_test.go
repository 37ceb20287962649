package vertexclaude

import "testing"

func TestBlock_ToolAccessors(t *testing.T) {
	block := NewToolUseBlock(1, "toolu_01", "get_weather", map[string]interface{}{"loc": "SF"})

	if !block.IsToolUseBlock() {
		t.Error("IsToolUseBlock() = false")
	}

	id, ok := block.GetToolUseID()
	if !ok || id != "toolu_01" {
		t.Errorf("GetToolUseID() = %q, %v", id, ok)
	}

	name, ok := block.GetToolName()
	if !ok || name != "get_weather" {
		t.Errorf("GetToolName() = %q, %v", name, ok)
	}

	input, ok := block.GetToolInput()
	if !ok || input["loc"] != "SF" {
		t.Errorf("GetToolInput() = %v, %v", input, ok)
	}
}

func TestBlock_ToolAccessorsOnTextBlock(t *testing.T) {
	block := NewTextBlock(0, "hello")

	if block.IsToolUseBlock() {
		t.Error("text block classified as tool_use")
	}
	if _, ok := block.GetToolName(); ok {
		t.Error("GetToolName() should fail on a text block")
	}
	if _, ok := block.GetToolInput(); ok {
		t.Error("GetToolInput() should fail on a text block")
	}
}

func TestBlock_ToolResult(t *testing.T) {
	block := NewToolResultBlock(0, "toolu_02", "42 degrees", false)

	if !block.IsToolResultBlock() {
		t.Error("IsToolResultBlock() = false")
	}
	id, ok := block.GetToolUseID()
	if !ok || id != "toolu_02" {
		t.Errorf("GetToolUseID() = %q, %v", id, ok)
	}
	if block.TextContent == nil || *block.TextContent != "42 degrees" {
		t.Errorf("result content = %v", block.TextContent)
	}
}

func TestBlockDelta_IsTextDelta(t *testing.T) {
	text := "hello"
	delta := &BlockDelta{
		BlockIndex: 0,
		DeltaType:  DeltaTypeText,
		TextDelta:  &text,
	}
	if !delta.IsTextDelta() {
		t.Error("IsTextDelta() = false for text delta")
	}

	empty := &BlockDelta{DeltaType: DeltaTypeText}
	if empty.IsTextDelta() {
		t.Error("IsTextDelta() = true without text payload")
	}
}

func TestBlockDelta_IsBlockStart(t *testing.T) {
	blockType := BlockTypeText
	start := &BlockDelta{BlockIndex: 0, BlockType: &blockType}
	if !start.IsBlockStart() {
		t.Error("IsBlockStart() = false with BlockType set")
	}

	continuation := &BlockDelta{BlockIndex: 0}
	if continuation.IsBlockStart() {
		t.Error("IsBlockStart() = true without BlockType")
	}
}

func TestGenerateResponse_Helpers(t *testing.T) {
	resp := &GenerateResponse{
		Blocks: []*Block{
			NewTextBlock(0, "Hello "),
			NewToolUseBlock(1, "toolu_01", "get_weather", nil),
			NewTextBlock(2, "world"),
		},
	}

	if got := resp.Text(); got != "Hello world" {
		t.Errorf("Text() = %q", got)
	}
	if got := len(resp.ToolUseBlocks()); got != 1 {
		t.Errorf("ToolUseBlocks() count = %d, want 1", got)
	}
}
