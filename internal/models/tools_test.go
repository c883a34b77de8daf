package models

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestCall_Patch(t *testing.T) {
	t.Run("it should fill defaults on an empty call", func(t *testing.T) {
		c := Call{}
		c.Patch()
		testboil.FailTestIfDiff(t, c.Type, "function")
		testboil.FailTestIfDiff(t, c.Name, "EMPTY-STRING")
		testboil.FailTestIfDiff(t, c.Function.Name, "EMPTY-STRING")
		testboil.FailTestIfDiff(t, c.Function.Arguments, "{}")
	})

	t.Run("it should serialize inputs as arguments", func(t *testing.T) {
		c := Call{Name: "web_search", Inputs: &Input{"query": "go generics"}}
		c.Patch()
		testboil.FailTestIfDiff(t, c.Function.Name, "web_search")
		testboil.FailTestIfDiff(t, c.Function.Arguments, `{"query":"go generics"}`)
	})

	t.Run("it should keep existing arguments", func(t *testing.T) {
		c := Call{Name: "x", Function: Specification{Name: "x", Arguments: `{"a":1}`}}
		c.Patch()
		testboil.FailTestIfDiff(t, c.Function.Arguments, `{"a":1}`)
	})
}

func TestCall_PrettyPrint(t *testing.T) {
	c := Call{Name: "web_search", Inputs: &Input{"query": "rust", "a": 1}}
	testboil.FailTestIfDiff(t, c.PrettyPrint(), "Call: 'web_search', inputs: [ 'a': '1','query': 'rust' ]")
}

func TestInputSchema_Patch(t *testing.T) {
	is := InputSchema{}
	is.Patch()
	if is.Required == nil || is.Properties == nil {
		t.Fatalf("expected initialized collections, got: %+v", is)
	}
	testboil.FailTestIfDiff(t, is.Type, "object")
}
