// search contains the web search backends the research assistant may use.
//
// Backends only fetch and parse. Ranking, deduplication and caching are left
// to the search engine itself, the order of the results is the order in which
// the engine listed them.
package search

import (
	"context"
	"errors"

	"github.com/baalimago/scout/internal/models"
)

// ErrSearchFailed wraps any transport or parsing failure of a search backend.
var ErrSearchFailed = errors.New("search failed")

// Searcher executes a single query and returns at most maxResults results.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
}
