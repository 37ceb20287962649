package anthropic

import "testing"

func TestDecodeEventMessageStart(t *testing.T) {
	data := []byte(`{"type":"message_start","message":{"id":"msg_01","type":"message","role":"assistant","model":"claude-3-5-sonnet@20240620","usage":{"input_tokens":25,"output_tokens":1}}}`)

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.Type != EventTypeMessageStart {
		t.Errorf("type = %q", event.Type)
	}
	if event.Message == nil || event.Message.ID != "msg_01" {
		t.Fatalf("message header not decoded: %+v", event.Message)
	}
	if event.Message.Usage.InputTokens != 25 {
		t.Errorf("input tokens = %d", event.Message.Usage.InputTokens)
	}
}

func TestDecodeEventToolBlockStart(t *testing.T) {
	data := []byte(`{"type":"content_block_start","index":1,"content_block":{"type":"tool_use","id":"toolu_01","name":"get_weather","input":{}}}`)

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.Index == nil || *event.Index != 1 {
		t.Errorf("index = %v", event.Index)
	}
	if event.ContentBlock == nil || event.ContentBlock.Type != ContentBlockTypeToolUse {
		t.Fatalf("content block not decoded: %+v", event.ContentBlock)
	}
	if event.ContentBlock.Name != "get_weather" {
		t.Errorf("tool name = %q", event.ContentBlock.Name)
	}
}

func TestDecodeEventInputJSONDelta(t *testing.T) {
	data := []byte(`{"type":"content_block_delta","index":1,"delta":{"type":"input_json_delta","partial_json":"{\"loc\":"}}`)

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.Delta == nil || event.Delta.Type != DeltaTypeInputJSONDelta {
		t.Fatalf("delta not decoded: %+v", event.Delta)
	}
	if event.Delta.PartialJSON != `{"loc":` {
		t.Errorf("partial json = %q", event.Delta.PartialJSON)
	}
}

func TestDecodeEventMessageDelta(t *testing.T) {
	data := []byte(`{"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":15}}`)

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.Delta == nil || event.Delta.StopReason != "end_turn" {
		t.Fatalf("stop reason not decoded: %+v", event.Delta)
	}
	if event.Usage == nil || event.Usage.OutputTokens != 15 {
		t.Errorf("usage = %+v", event.Usage)
	}
}

func TestDecodeEventError(t *testing.T) {
	data := []byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.Error == nil || event.Error.Type != "overloaded_error" {
		t.Fatalf("error payload not decoded: %+v", event.Error)
	}
}

func TestDecodeEventMalformedPayload(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"type": `)); err == nil {
		t.Fatal("expected decode error for truncated payload")
	}
}
