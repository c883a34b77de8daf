package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// LLMTool is a capability which may be declared to, and invoked by, a
// language model.
type LLMTool interface {
	Call(ctx context.Context, input Input) (string, error)
	Specification() Specification
}

type Input map[string]any

type Call struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Type     string        `json:"type,omitempty"`
	Inputs   *Input        `json:"inputs,omitempty"`
	Function Specification `json:"function,omitempty"`
}

// Patch the call, filling structs and initializing fields so that the
// call may be replayed to the backend as part of the conversation.
func (c *Call) Patch() {
	if c.Type == "" {
		c.Type = "function"
	}
	if c.Function.Name == "" {
		if c.Name == "" {
			c.Name = "EMPTY-STRING"
		}
		c.Function.Name = c.Name
	}
	if c.Function.Inputs != nil {
		c.Function.Inputs.Patch()
	}
	if c.Function.Arguments == "" {
		args := "{}"
		if c.Inputs != nil {
			b, err := json.Marshal(*c.Inputs)
			if err == nil {
				args = string(b)
			}
		}
		c.Function.Arguments = args
	}
}

// PrettyPrint the call, showing name and what input params is used
// on a concise way
func (c Call) PrettyPrint() string {
	var inp Input
	if c.Inputs != nil {
		inp = *c.Inputs
	}
	keys := make([]string, 0, len(inp))
	for k := range inp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paramStr := ""
	for i, k := range keys {
		paramStr += fmt.Sprintf("'%v': '%v'", k, inp[k])
		if i < len(keys)-1 {
			paramStr += ","
		}
	}
	return fmt.Sprintf("Call: '%s', inputs: [ %s ]", c.Name, paramStr)
}

type Specification struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Inputs      *InputSchema `json:"parameters,omitempty"`
	// OpenAI compatible endpoints want the arguments echoed back as a
	// stringified json object
	Arguments string `json:"arguments,omitempty"`
}

type InputSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]ParameterObject `json:"properties"`
}

// Patch the input schema so that empty fields serialize as empty
// collections instead of null.
func (is *InputSchema) Patch() {
	if is.Required == nil {
		is.Required = make([]string, 0)
	}
	if is.Properties == nil {
		is.Properties = make(map[string]ParameterObject)
	}
	if is.Type == "" {
		is.Type = "object"
	}
}

type ParameterObject struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Enum        *[]string        `json:"enum,omitempty"`
	Items       *ParameterObject `json:"items,omitempty"`
}
