// hints maps failure messages to remediation hints shown to the user. The
// matching is best-effort: wording differs between backend versions, so a hint
// is only ever appended to the message and never changes how a failure is
// handled.
package hints

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baalimago/scout/internal/search"
)

// Rule matches a failure when all Signatures occur in its message (case
// insensitive), or when the error wraps Is.
type Rule struct {
	Signatures []string
	Is         error
	Hint       string
}

type Classifier struct {
	Rules []Rule
}

// Default rules for an Ollama backend serving model. Search failures come
// first, their transport errors read the same as those of the backend.
func Default(model string) Classifier {
	install := fmt.Sprintf("Make sure the model is installed: ollama pull %v", model)
	return Classifier{
		Rules: []Rule{
			{Is: search.ErrSearchFailed, Hint: "Make sure you are online and DuckDuckGo is reachable"},
			{Signatures: []string{"connection refused"}, Hint: "Make sure Ollama is running: ollama serve"},
			{Signatures: []string{"backend unreachable"}, Hint: "Make sure Ollama is running: ollama serve"},
			{Signatures: []string{"model", "not found"}, Hint: install},
			{Signatures: []string{"model", "try pulling"}, Hint: install},
			{Signatures: []string{"model unavailable"}, Hint: install},
		},
	}
}

// Classify returns the hint of the first matching rule, or "" if none match.
// err may be nil, in which case only msg is inspected.
func (c Classifier) Classify(msg string, err error) string {
	if msg == "" && err != nil {
		msg = err.Error()
	}
	lower := strings.ToLower(msg)
	for _, r := range c.Rules {
		if r.matches(lower, err) {
			return r.Hint
		}
	}
	return ""
}

func (r Rule) matches(lowerMsg string, err error) bool {
	if r.Is != nil && err != nil && errors.Is(err, r.Is) {
		return true
	}
	if len(r.Signatures) == 0 {
		return false
	}
	for _, s := range r.Signatures {
		if !strings.Contains(lowerMsg, strings.ToLower(s)) {
			return false
		}
	}
	return true
}
