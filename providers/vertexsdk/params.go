package vertexsdk

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mberga/vertexclaude-go"
)

// buildMessageParams constructs SDK parameters from a GenerateRequest.
// This function is shared between GenerateResponse and StreamResponse.
func buildMessageParams(req *vertexclaude.GenerateRequest) (anthropic.MessageNewParams, error) {
	if err := vertexclaude.ValidateRequestParams(req.Params); err != nil {
		return anthropic.MessageNewParams{}, err
	}

	messages, err := convertToSDKMessages(req.Messages)
	if err != nil {
		return anthropic.MessageNewParams{}, fmt.Errorf("failed to convert messages: %w", err)
	}

	params := req.Params
	if params == nil {
		params = &vertexclaude.RequestParams{}
	}

	model := req.Model
	if model == "" {
		model = vertexclaude.DefaultModel
	}

	apiParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		Messages:  messages,
		MaxTokens: int64(params.GetMaxTokens(vertexclaude.DefaultMaxTokens)),
	}

	if params.Temperature != nil {
		apiParams.Temperature = anthropic.Float(*params.Temperature)
	}

	if params.TopP != nil {
		apiParams.TopP = anthropic.Float(*params.TopP)
	}

	if params.TopK != nil {
		apiParams.TopK = anthropic.Int(int64(*params.TopK))
	}

	if len(params.Stop) > 0 {
		apiParams.StopSequences = params.Stop
	}

	if params.System != nil {
		apiParams.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: *params.System,
			},
		}
	}

	if len(params.Tools) > 0 {
		tools, err := convertTools(params.Tools)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		apiParams.Tools = tools
	}

	return apiParams, nil
}
