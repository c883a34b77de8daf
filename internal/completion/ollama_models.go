package completion

import "github.com/baalimago/scout/internal/models"

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  *models.InputSchema `json:"parameters"`
}

type wireMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type wireToolCall struct {
	ID       string   `json:"id,omitempty"`
	Index    int      `json:"index"`
	Type     string   `json:"type,omitempty"`
	Function wireFunc `json:"function"`
}

type wireFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type req struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	Tools       []wireTool    `json:"tools,omitempty"`
}

type chatCompletionChunk struct {
	ID      string     `json:"id"`
	Object  string     `json:"object"`
	Created int        `json:"created"`
	Model   string     `json:"model"`
	Choices []choice   `json:"choices"`
	Error   *wireError `json:"error,omitempty"`
}

type choice struct {
	Index        int    `json:"index"`
	Delta        delta  `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type delta struct {
	Content   string         `json:"content"`
	Role      string         `json:"role"`
	ToolCalls []wireToolCall `json:"tool_calls"`
}

type wireError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorBody struct {
	Error wireError `json:"error"`
}

// toWire converts the internal chat messages into the OpenAI wire format.
func toWire(msgs []models.Message) []wireMessage {
	ret := make([]wireMessage, 0, len(msgs))
	for _, m := range msgs {
		wm := wireMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for i, c := range m.ToolCalls {
			c.Patch()
			wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
				ID:    c.ID,
				Index: i,
				Type:  c.Type,
				Function: wireFunc{
					Name:      c.Function.Name,
					Arguments: c.Function.Arguments,
				},
			})
		}
		ret = append(ret, wm)
	}
	return ret
}

func toWireTools(tools []models.LLMTool) []wireTool {
	ret := make([]wireTool, 0, len(tools))
	for _, t := range tools {
		spec := t.Specification()
		if spec.Inputs != nil {
			spec.Inputs.Patch()
		}
		ret = append(ret, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Inputs,
			},
		})
	}
	return ret
}
