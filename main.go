package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/scout/internal"
)

const usage = `scout - research assistant, a local LLM with web search

Prerequisites:
  1. Install Ollama: https://ollama.com
  2. Pull a model: ollama pull llama3.2
  3. Start Ollama: ollama serve

Usage: scout [flags] <query>

Flags:
  -i, -interactive bool   Enter interactive mode, ask questions one by one.
  -m, -model string       Ollama model to use. (default is found in researchConfig.json or OLLAMA_MODEL)
  -q, -quick bool         Quick search mode, list search results without AI synthesis.
  -v, -verbose bool       Enable verbose/debug logging.
  -r, -raw bool           Print raw markdown, don't render it.
  -version bool           Print version and exit.

Environment:
  OLLAMA_MODEL            Model to use. (default 'llama3.2')
  OLLAMA_HOST             Base url of the Ollama server. (default 'http://localhost:11434')
  MAX_SEARCH_RESULTS      Maximum amount of search results. (default 5)
  SCOUT_CONFIG_HOME       Directory of the config files. (default '<user config dir>/.scout')
  NO_COLOR                Disable ansi colors and markdown rendering.

Examples:
  - scout "What are the latest developments in Rust async?"
  - scout -q "Rust web frameworks 2024"
  - scout -m deepseek-r1:8b "Machine learning in Rust"
  - scout -i
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app, err := internal.Setup(args, os.Stdout, os.Stderr)
	if err != nil {
		switch {
		case internal.IsHelp(err):
			fmt.Print(usage)
			return 0
		case errors.Is(err, internal.ErrUserInitiatedExit):
			return 0
		case errors.Is(err, internal.ErrNoQuery):
			ancli.PrintErr("please provide a query or use interactive mode\n")
			fmt.Fprint(os.Stderr, "\nUsage:\n  scout \"Your question here\"\n  scout -interactive\n\nRun with -h for more options.\n")
			return 1
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	err = app.Run(ctx)
	if err != nil {
		// Already reported by the session
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("research completed successfully\n")
	}
	return 0
}
