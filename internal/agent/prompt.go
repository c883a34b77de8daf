package agent

import (
	"fmt"
	"strings"

	"github.com/baalimago/scout/internal/models"
)

// NoHistory is rendered in place of the history when there is none, so the
// preamble never contains an empty block.
const NoHistory = "No previous conversation."

// HistoryPlaceholder is replaced by the rendered history in the chat template.
const HistoryPlaceholder = "{history}"

const ChatSystemPrompt = `
You are an AI research assistant. You help users by searching the web and summarizing findings.

SEARCH RULES (CRITICAL - FOLLOW EXACTLY):
1. You have access to a web_search tool
2. Search ONCE only - do not repeat searches
3. After the search completes, you MUST provide your final answer directly
4. Stop after one search - do NOT call web_search again
5. Your response should include sources (URLs)

CONVERSATION HISTORY:
{history}

When the user asks a question:
- Search once using web_search
- After receiving results, give a complete answer with sources
- Do not ask follow-up questions or call tools again
`

const researchInstruction = "Research and answer the following question. Use the web_search tool to find " +
	"current information, then provide a comprehensive summary with sources:\n\n"

// RenderHistory formats the turns oldest first as
//
//	[Turn n]
//	User: <query>
//	AI: <response>
//
// separated by blank lines.
func RenderHistory(turns []models.Turn) string {
	if len(turns) == 0 {
		return NoHistory
	}
	rendered := make([]string, 0, len(turns))
	for i, t := range turns {
		rendered = append(rendered, fmt.Sprintf("[Turn %d]\nUser: %v\nAI: %v", i+1, t.Query, t.Response))
	}
	return strings.Join(rendered, "\n\n")
}

// RenderPreamble substitutes the rendered turns into every history placeholder of template.
func RenderPreamble(template string, turns []models.Turn) string {
	return strings.ReplaceAll(template, HistoryPlaceholder, RenderHistory(turns))
}

func enhanceQuery(query string) string {
	return researchInstruction + query
}
