package completion

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/scout/internal/models"
	"github.com/baalimago/scout/internal/tools"
	"github.com/google/uuid"
)

// Invoke the model with the preamble and message, letting it call the
// declared tools. Every request to the backend is one turn, the loop stops
// with ErrTurnBudgetExhausted if the model still wants to call tools after
// req.TurnBudget turns. A tool call on the last turn is not executed, as
// there is no turn left to hand its output back to the model.
func (o *Ollama) Invoke(ctx context.Context, req models.CompletionRequest) (models.CompletionResponse, error) {
	if req.TurnBudget < 1 {
		return models.CompletionResponse{}, fmt.Errorf("turn budget must be positive, got: %v", req.TurnBudget)
	}
	registry := tools.NewRegistry(req.Tools...)
	wireTools := toWireTools(req.Tools)
	chat := models.Chat{
		ID: uuid.NewString(),
		Messages: []models.Message{
			{Role: "system", Content: req.Preamble},
			{Role: "user", Content: req.Message},
		},
	}

	var resp models.CompletionResponse
	for resp.Turns < req.TurnBudget {
		resp.Turns++
		turn, err := o.roundTrip(ctx, chat.Messages, wireTools)
		if err != nil {
			return resp, fmt.Errorf("turn %v of %v: %w", resp.Turns, req.TurnBudget, err)
		}
		if turn.call == nil {
			resp.Text = turn.text
			return resp, nil
		}
		if resp.Turns == req.TurnBudget {
			if o.debug {
				ancli.PrintWarn(fmt.Sprintf("chat %v: dropping tool call on last turn: %v\n", chat.ID, turn.call.Name))
			}
			break
		}
		resp.ToolCalls++
		o.doToolCall(ctx, registry, &chat, *turn.call, req.TurnBudget-resp.Turns)
	}
	return resp, fmt.Errorf("%w: model was still calling tools after %v turns", ErrTurnBudgetExhausted, req.TurnBudget)
}

// doToolCall appends the assistant tool call and the tool output to the conversation.
func (o *Ollama) doToolCall(ctx context.Context, registry *tools.Registry, chat *models.Chat, call models.Call, turnsLeft int) {
	call.Patch()
	if o.debug {
		ancli.PrintOK(fmt.Sprintf("chat %v: received tool call: %v\n", chat.ID, call.PrettyPrint()))
	}
	chat.Messages = append(chat.Messages, models.Message{
		Role:      "assistant",
		ToolCalls: []models.Call{call},
	})
	out := registry.Invoke(ctx, call)
	out = limitToolOutput(out, o.ToolOutputRuneLimit)
	// Some backends reject empty tool responses, even though they're valid
	if out == "" {
		out = "<EMPTY-RESPONSE>"
	}
	out = fmt.Sprintf("[ Turns remaining: %v ] %v", turnsLeft, out)
	chat.Messages = append(chat.Messages, models.Message{
		Role:       "tool",
		Content:    out,
		ToolCallID: call.ID,
	})
}

func limitToolOutput(out string, limit int) string {
	if limit <= 0 {
		return out
	}
	amRunes := utf8.RuneCountInString(out)
	if amRunes <= limit {
		return out
	}
	return fmt.Sprintf(
		"%v... and %v more characters. The tool's output has been restricted as it's too long.",
		string([]rune(out)[:limit]), amRunes-limit)
}
