// agent owns the research conversation: it renders the history into the
// system prompt, hands the question to the completion backend along with the
// web search tool, and records every successful exchange.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/baalimago/scout/internal/config"
	"github.com/baalimago/scout/internal/models"
	"github.com/baalimago/scout/internal/search"
	"github.com/baalimago/scout/internal/tools"
	"github.com/google/uuid"
)

// DefaultTurnBudget is the maximum amount of backend round-trips per Chat call.
const DefaultTurnBudget = 5

// ErrEmptyInput is returned when the query holds nothing but whitespace.
var ErrEmptyInput = errors.New("empty input")

// Completer runs a bounded tool calling conversation with a language model.
type Completer interface {
	Invoke(ctx context.Context, req models.CompletionRequest) (models.CompletionResponse, error)
}

// Orchestrator answers research questions, keeping the history of the
// successful ones.
type Orchestrator struct {
	conf       config.Configuration
	backend    Completer
	searcher   search.Searcher
	log        *slog.Logger
	turnBudget int
	template   string
	history    []models.Turn
}

// Option configures an Orchestrator in New.
type Option func(*Orchestrator)

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

func WithTurnBudget(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.turnBudget = n
		}
	}
}

// WithChatTemplate replaces ChatSystemPrompt. The template should contain
// HistoryPlaceholder.
func WithChatTemplate(tmpl string) Option {
	return func(o *Orchestrator) {
		o.template = tmpl
	}
}

// New orchestrator. conf is expected to already be validated.
func New(conf config.Configuration, backend Completer, searcher search.Searcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		conf:       conf,
		backend:    backend,
		searcher:   searcher,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		turnBudget: DefaultTurnBudget,
		template:   ChatSystemPrompt,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.With("session", uuid.NewString())
	return o
}

// Chat researches query with the language model, replaying the history of
// the conversation in the system prompt. The exchange is appended to the
// history only on success.
func (o *Orchestrator) Chat(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyInput
	}
	o.log.Info("starting chat query", "query", query, "turns", len(o.history))
	req := models.CompletionRequest{
		Preamble:   RenderPreamble(o.template, o.history),
		Tools:      []models.LLMTool{tools.NewWebSearch(o.searcher, o.conf.MaxSearchResults)},
		Message:    enhanceQuery(query),
		TurnBudget: o.turnBudget,
	}
	o.log.Debug("agent configured", "model", o.conf.Model, "host", o.conf.Host, "turn_budget", o.turnBudget)

	resp, err := o.backend.Invoke(ctx, req)
	if err != nil {
		o.log.Error("chat failed", "error", err)
		return "", fmt.Errorf("agent execution failed: %w", err)
	}

	searched := resp.ToolCalls > 0
	if !searched {
		o.log.Warn("answered without searching the web", "query", query)
	}
	o.history = append(o.history, models.Turn{
		Query:    query,
		Response: resp.Text,
		Searched: searched,
	})
	o.log.Info("chat completed", "turns_used", resp.Turns, "tool_calls", resp.ToolCalls)
	return resp.Text, nil
}

// QuickSearch runs query once against the search backend and formats the
// results as markdown, without involving the language model.
func (o *Orchestrator) QuickSearch(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyInput
	}
	o.log.Info("performing quick search", "query", query)
	results, err := o.searcher.Search(ctx, query, o.conf.MaxSearchResults)
	if err != nil {
		return "", fmt.Errorf("quick search: %w", err)
	}
	return FormatResults(query, results), nil
}

// FormatResults renders results as a numbered markdown list, in the given order.
func FormatResults(query string, results []models.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for: %v", query)
	}
	entries := make([]string, 0, len(results))
	for i, r := range results {
		entries = append(entries, fmt.Sprintf("%d. **%v**\n   %v\n   URL: %v\n", i+1, r.Title, r.Snippet, r.URL))
	}
	return "## Search Results\n\n" + strings.Join(entries, "\n")
}

func (o *Orchestrator) ClearHistory() {
	o.history = nil
	o.log.Debug("history cleared")
}

// History returns a copy of the turns so far, oldest first.
func (o *Orchestrator) History() []models.Turn {
	ret := make([]models.Turn, len(o.history))
	copy(ret, o.history)
	return ret
}
