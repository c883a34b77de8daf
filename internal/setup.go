package internal

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/scout/internal/agent"
	"github.com/baalimago/scout/internal/completion"
	"github.com/baalimago/scout/internal/config"
	"github.com/baalimago/scout/internal/hints"
	"github.com/baalimago/scout/internal/search"
	"github.com/baalimago/scout/internal/session"
	"github.com/baalimago/scout/internal/utils"
)

type Mode int

const (
	SINGLE Mode = iota
	INTERACTIVE
)

var (
	// ErrNoQuery is returned when there is neither a query nor interactive mode.
	ErrNoQuery = errors.New("no query provided")
	// ErrUserInitiatedExit is returned when setup has done everything asked of
	// it, such as printing the version, and nothing remains to run.
	ErrUserInitiatedExit = errors.New("user initiated exit")
)

// App is a wired research assistant, ready to run.
type App struct {
	Mode   Mode
	Query  string
	Quick  bool
	driver *session.Driver
}

// Run the app in its mode until done or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.Mode == INTERACTIVE {
		return a.driver.RunInteractive(ctx)
	}
	return a.driver.RunSingle(ctx, a.Query, a.Quick)
}

// Setup parses args, loads and validates the configuration, and wires the
// orchestrator to the Ollama backend and the DuckDuckGo search. -h yields
// flag.ErrHelp.
func Setup(args []string, stdout, stderr io.Writer) (*App, error) {
	flagSet, positional, err := parseFlags(defaultFlags, args)
	if err != nil {
		return nil, err
	}
	if flagSet.Version {
		if err := printVersion(stdout); err != nil {
			return nil, err
		}
		return nil, ErrUserInitiatedExit
	}

	mode := SINGLE
	if flagSet.Interactive {
		mode = INTERACTIVE
	}
	query := strings.TrimSpace(strings.Join(positional, " "))
	if mode == SINGLE && query == "" {
		return nil, ErrNoQuery
	}

	debug := flagSet.Verbose || misc.Truthy(os.Getenv("DEBUG"))
	log := newLogger(stderr, debug)

	conf, err := loadConfig(flagSet)
	if err != nil {
		return nil, err
	}
	log.Info("configuration loaded", "model", conf.Model, "host", conf.Host, "max_search_results", conf.MaxSearchResults)

	backend, err := completion.NewOllama(conf.Host, conf.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to setup completion backend: %w", err)
	}
	orch := agent.New(conf, backend, search.NewDuckDuckGo(), agent.WithLogger(log))
	driver := session.New(orch, hints.Default(conf.Model),
		session.WithOutput(stdout),
		session.WithErrOutput(stderr),
		session.WithRaw(flagSet.PrintRaw),
		session.WithLogger(log),
	)
	return &App{
		Mode:   mode,
		Query:  query,
		Quick:  flagSet.Quick,
		driver: driver,
	}, nil
}

// loadConfig resolves the configuration as flags > env > file > default and
// validates it.
func loadConfig(flagSet Configurations) (config.Configuration, error) {
	configDir, err := utils.GetScoutConfigDir()
	if err != nil {
		return config.Configuration{}, fmt.Errorf("failed to find config dir: %w", err)
	}
	if err := utils.LoadTheme(configDir); err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to load theme, using default: %v\n", err))
	}
	conf, err := config.Load(configDir)
	if err != nil {
		return config.Configuration{}, err
	}
	conf = conf.WithModel(flagSet.Model)
	if err := conf.Validate(); err != nil {
		return config.Configuration{}, err
	}
	return conf, nil
}

// newLogger writes structured events to w. Warnings and errors are always
// shown, the rest only when debugging.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// IsHelp reports whether err is the result of asking for usage.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
