package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/scout/internal/models"
	"github.com/baalimago/scout/internal/search"
)

const WebSearchName = "web_search"

// WebSearchTool exposes a search backend to the language model.
type WebSearchTool struct {
	searcher   search.Searcher
	maxResults int
}

func NewWebSearch(searcher search.Searcher, maxResults int) *WebSearchTool {
	return &WebSearchTool{searcher: searcher, maxResults: maxResults}
}

func (w *WebSearchTool) Specification() models.Specification {
	return models.Specification{
		Name: WebSearchName,
		Description: fmt.Sprintf("Search the web for current information. Returns up to %v results, "+
			"each with a title, a snippet and a URL. Call this once per question.", w.maxResults),
		Inputs: &models.InputSchema{
			Type: "object",
			Properties: map[string]models.ParameterObject{
				"query": {
					Type:        "string",
					Description: "The search query. Keep it short and specific.",
				},
			},
			Required: []string{"query"},
		},
	}
}

func (w *WebSearchTool) Call(ctx context.Context, input models.Input) (string, error) {
	query, ok := input["query"].(string)
	if !ok {
		return "", fmt.Errorf("query must be a string")
	}
	results, err := w.searcher.Search(ctx, query, w.maxResults)
	if err != nil {
		return "", err
	}
	return FormatForModel(query, results), nil
}

// FormatForModel renders results in a compact form suitable as tool output.
func FormatForModel(query string, results []models.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for: %v", query)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for: %v\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %v\n   URL: %v\n   %v\n", i+1, r.Title, r.URL, r.Snippet)
	}
	return sb.String()
}
