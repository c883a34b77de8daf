// completion talks to a locally hosted Ollama server through its OpenAI
// compatible chat completions endpoint.
package completion

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const ChatPath = "/v1/chat/completions"

var (
	// ErrBackendUnreachable is returned when no connection could be made to the backend.
	ErrBackendUnreachable = errors.New("backend unreachable")
	// ErrModelUnavailable is returned when the backend is up, but doesn't have the model.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrTurnBudgetExhausted is returned when the model keeps calling tools
	// after the last permitted round-trip.
	ErrTurnBudgetExhausted = errors.New("turn budget exhausted")
)

var Default = Ollama{
	Model:               "llama3.2",
	Temperature:         0.7,
	TopP:                1.0,
	ToolOutputRuneLimit: 30000,
}

type Ollama struct {
	Model       string  `json:"model"`
	MaxTokens   *int    `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	// ToolOutputRuneLimit limits the amount of runes a tool may return
	// before the output is truncated. Zero means no limit.
	ToolOutputRuneLimit int `json:"tool_output_rune_limit"`

	url        string
	apiKey     string
	toolChoice string
	client     *http.Client
	debug      bool
}

// NewOllama sets up a copy of Default towards the server at host.
func NewOllama(host, model string) (*Ollama, error) {
	o := Default
	if model != "" {
		o.Model = model
	}
	err := o.Setup(host)
	if err != nil {
		return nil, fmt.Errorf("failed to setup ollama: %w", err)
	}
	return &o, nil
}

// Setup the client towards the host base url. Ollama doesn't require an api
// key, but the OpenAI compatible endpoint wants an Authorization header.
func (o *Ollama) Setup(host string) error {
	u, err := url.Parse(strings.TrimSpace(host))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("host must be a base url such as 'http://localhost:11434', got: '%v'", host)
	}
	if os.Getenv("OLLAMA_API_KEY") == "" {
		os.Setenv("OLLAMA_API_KEY", "ollama")
	}
	o.apiKey = os.Getenv("OLLAMA_API_KEY")
	o.url = strings.TrimSuffix(u.String(), "/") + ChatPath
	o.Model = strings.TrimPrefix(o.Model, "ollama:")
	o.toolChoice = "auto"
	if o.client == nil {
		o.client = &http.Client{}
	}
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("OLLAMA_DEBUG")) {
		o.debug = true
	}
	return nil
}

// URL of the chat completions endpoint.
func (o *Ollama) URL() string {
	return o.url
}
