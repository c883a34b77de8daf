package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/scout/internal/models"
)

type mockLLMTool struct {
	spec models.Specification
	out  string
	err  error
	got  models.Input
}

func (m *mockLLMTool) Call(ctx context.Context, input models.Input) (string, error) {
	m.got = input
	return m.out, m.err
}

func (m *mockLLMTool) Specification() models.Specification {
	return m.spec
}

func newMockTool(name string) *mockLLMTool {
	return &mockLLMTool{spec: models.Specification{Name: name}, out: "mock output"}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(newMockTool("a"), newMockTool("b"))
	testboil.FailTestIfDiff(t, len(r.tools), 2)
	if _, ok := r.Get("a"); !ok {
		t.Fatal("expected tool 'a' to be registered")
	}
	if _, ok := r.Get("c"); ok {
		t.Fatal("did not expect tool 'c' to be registered")
	}
}

func TestRegistry_Invoke(t *testing.T) {
	t.Run("it should pass inputs and return output", func(t *testing.T) {
		tool := newMockTool("a")
		r := NewRegistry(tool)
		out := r.Invoke(context.Background(), models.Call{Name: "a", Inputs: &models.Input{"k": "v"}})
		testboil.FailTestIfDiff(t, out, "mock output")
		if tool.got["k"] != "v" {
			t.Fatalf("expected input to be passed through, got: %v", tool.got)
		}
	})

	t.Run("it should tolerate nil inputs", func(t *testing.T) {
		tool := newMockTool("a")
		out := NewRegistry(tool).Invoke(context.Background(), models.Call{Name: "a"})
		testboil.FailTestIfDiff(t, out, "mock output")
	})

	t.Run("it should report unknown tools", func(t *testing.T) {
		out := NewRegistry().Invoke(context.Background(), models.Call{Name: "nope"})
		testboil.FailTestIfDiff(t, out, "ERROR: unknown tool call: nope")
	})

	t.Run("it should report tool errors as output", func(t *testing.T) {
		tool := newMockTool("a")
		tool.err = errors.New("kaboom")
		out := NewRegistry(tool).Invoke(context.Background(), models.Call{Name: "a"})
		if !strings.HasPrefix(out, "ERROR: failed to run tool: a") {
			t.Fatalf("unexpected output: %q", out)
		}
		testboil.AssertStringContains(t, out, "kaboom")
	})
}
