package tools

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/scout/internal/models"
)

// Registry is a threadsafe storage for LLMTools, keyed by specification name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]models.LLMTool
	debug bool
}

// NewRegistry returns a registry holding the given tools.
func NewRegistry(tools ...models.LLMTool) *Registry {
	r := &Registry{tools: make(map[string]models.LLMTool), debug: misc.Truthy(os.Getenv("DEBUG"))}
	for _, t := range tools {
		r.Set(t)
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (models.LLMTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Set registers the tool under its specification name.
func (r *Registry) Set(t models.LLMTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Specification().Name
	if r.debug {
		ancli.Okf("adding tool to registry, name: %v\n", name)
	}
	r.tools[name] = t
}

// Invoke the call, and gather both error and output in the same string.
// The model is told about failures instead of the loop being aborted, so
// that it may recover and answer anyways.
func (r *Registry) Invoke(ctx context.Context, call models.Call) string {
	t, exists := r.Get(call.Name)
	if !exists {
		return "ERROR: unknown tool call: " + call.Name
	}
	if r.debug || misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.Noticef("Invoke call: %v", debug.IndentedJsonFmt(call))
	}
	inp := models.Input{}
	if call.Inputs != nil {
		inp = *call.Inputs
	}
	out, err := t.Call(ctx, inp)
	if err != nil {
		return fmt.Sprintf("ERROR: failed to run tool: %v, error: %v", call.Name, err)
	}
	return out
}
