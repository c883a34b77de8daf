package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/scout/internal/models"
)

type mockSearcher struct {
	gotQuery string
	gotMax   int
	results  []models.SearchResult
	err      error
}

func (m *mockSearcher) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	m.gotQuery = query
	m.gotMax = maxResults
	return m.results, m.err
}

func TestWebSearchTool_Specification(t *testing.T) {
	spec := NewWebSearch(&mockSearcher{}, 7).Specification()
	testboil.FailTestIfDiff(t, spec.Name, "web_search")
	testboil.AssertStringContains(t, spec.Description, "up to 7 results")
	if spec.Inputs == nil {
		t.Fatal("expected input schema")
	}
	if _, ok := spec.Inputs.Properties["query"]; !ok {
		t.Fatal("expected query parameter")
	}
	testboil.FailTestIfDiff(t, len(spec.Inputs.Required), 1)
	testboil.FailTestIfDiff(t, spec.Inputs.Required[0], "query")
}

func TestWebSearchTool_Call(t *testing.T) {
	t.Run("it should pass query and cap to the searcher", func(t *testing.T) {
		s := &mockSearcher{results: []models.SearchResult{
			{Title: "First", Snippet: "one", URL: "https://1.com"},
			{Title: "Second", Snippet: "two", URL: "https://2.com"},
		}}
		out, err := NewWebSearch(s, 3).Call(context.Background(), models.Input{"query": "rust async"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, s.gotQuery, "rust async")
		testboil.FailTestIfDiff(t, s.gotMax, 3)
		testboil.AssertStringContains(t, out, "1. First\n   URL: https://1.com\n   one")
		testboil.AssertStringContains(t, out, "2. Second\n   URL: https://2.com\n   two")
	})

	t.Run("it should report no results", func(t *testing.T) {
		out, err := NewWebSearch(&mockSearcher{}, 3).Call(context.Background(), models.Input{"query": "zzz"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, out, "No results found for: zzz")
	})

	t.Run("it should reject non string query", func(t *testing.T) {
		_, err := NewWebSearch(&mockSearcher{}, 3).Call(context.Background(), models.Input{"query": 12})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("it should propagate search errors", func(t *testing.T) {
		want := errors.New("boom")
		_, err := NewWebSearch(&mockSearcher{err: want}, 3).Call(context.Background(), models.Input{"query": "x"})
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	})
}
