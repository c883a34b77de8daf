package models

// Chat is one conversation with the completion backend. ID identifies it in
// debug output.
type Chat struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	ToolCalls  []Call `json:"tool_calls,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Turn is one successful exchange with the research assistant.
type Turn struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	// Searched is true if the backend invoked a tool before answering. A
	// false value means the model answered from what it already knew.
	Searched bool `json:"searched"`
}

// SearchResult is a single item produced by a search backend.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// CompletionRequest is everything the completion backend needs for one
// orchestration call.
type CompletionRequest struct {
	Preamble string
	Tools    []LLMTool
	Message  string
	// TurnBudget is the maximum amount of round-trips to the backend,
	// tool invocations included.
	TurnBudget int
}

type CompletionResponse struct {
	Text      string
	Turns     int
	ToolCalls int
}
