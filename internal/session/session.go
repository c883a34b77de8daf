// session drives the research assistant from the terminal, either for a
// single query or as an interactive read loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/baalimago/scout/internal/hints"
	"github.com/baalimago/scout/internal/utils"
)

// Orchestrator is the part of the agent the session needs.
type Orchestrator interface {
	Chat(ctx context.Context, query string) (string, error)
	QuickSearch(ctx context.Context, query string) (string, error)
	ClearHistory()
}

// Driver runs the research assistant against a terminal.
type Driver struct {
	orch       Orchestrator
	classifier hints.Classifier
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	raw        bool
	log        *slog.Logger
}

// Option configures a Driver in New.
type Option func(*Driver)

func WithInput(r io.Reader) Option {
	return func(d *Driver) { d.in = r }
}

func WithOutput(w io.Writer) Option {
	return func(d *Driver) { d.out = w }
}

func WithErrOutput(w io.Writer) Option {
	return func(d *Driver) { d.errOut = w }
}

// WithRaw disables markdown rendering of results.
func WithRaw(raw bool) Option {
	return func(d *Driver) { d.raw = raw }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// New driver reading from stdin and writing to stdout/stderr unless
// overridden by opts.
func New(orch Orchestrator, classifier hints.Classifier, opts ...Option) *Driver {
	d := &Driver{
		orch:       orch,
		classifier: classifier,
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunSingle answers query, with quick search if quick is set. The returned
// error has already been reported to the user.
func (d *Driver) RunSingle(ctx context.Context, query string, quick bool) error {
	var res string
	var err error
	if quick {
		d.log.Info("running in quick search mode")
		stop := utils.StartSpinner(d.errOut, " Searching...")
		res, err = d.orch.QuickSearch(ctx, query)
		stop()
	} else {
		d.log.Info("running full research mode")
		stop := utils.StartSpinner(d.errOut, " Researching...")
		res, err = d.orch.Chat(ctx, query)
		stop()
	}
	if err != nil {
		d.log.Error("research failed", "error", err)
		d.reportError("Research failed", err)
		return err
	}

	sep := utils.Colorize(utils.ThemeBannerColor(), utils.Separator())
	fmt.Fprintf(d.out, "\n%v\nRESEARCH RESULTS\n%v\n\n", sep, sep)
	if err := utils.AttemptPrettyPrint(d.out, res, d.raw); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	fmt.Fprintf(d.out, "\n%v\n", sep)
	return nil
}

// RunInteractive reads questions line by line until quit/exit, end of input
// or ctx is cancelled. Failed questions are reported and the loop continues.
func (d *Driver) RunInteractive(ctx context.Context) error {
	sep := utils.Colorize(utils.ThemeBannerColor(), utils.Separator())
	fmt.Fprintf(d.out, "\n%v\nAI Research Agent - Interactive Mode\n%v\n", sep, sep)
	fmt.Fprintln(d.out, "Type your question and press Enter.")
	fmt.Fprintln(d.out, "Commands: 'clear' to clear history, 'quit' or 'exit' to quit.")
	fmt.Fprintf(d.out, "%v\n\n", sep)

	done := make(chan struct{})
	defer close(done)
	lines, scanErr := scanLines(d.in, done)
	for {
		fmt.Fprint(d.out, utils.Colorize(utils.ThemePromptColor(), "You: "))
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(d.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(d.out)
				if err := scanErr(); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Fprintln(d.out, "Goodbye!")
			return nil
		case "clear":
			d.orch.ClearHistory()
			fmt.Fprintln(d.out, "Conversation history cleared.")
			fmt.Fprintln(d.out)
			continue
		case "":
			continue
		}

		stop := utils.StartSpinner(d.errOut, " Researching...")
		res, err := d.orch.Chat(ctx, line)
		stop()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(d.out)
				return nil
			}
			d.log.Error("chat failed", "error", err)
			d.reportError("Error", err)
			continue
		}
		fmt.Fprintf(d.out, "\n%v\n%v\n", sep, utils.Colorize(utils.ThemeAnswerColor(), "AI:"))
		if err := utils.AttemptPrettyPrint(d.out, res, d.raw); err != nil {
			return fmt.Errorf("failed to print response: %w", err)
		}
		fmt.Fprintf(d.out, "%v\n\n", sep)
	}
}

func (d *Driver) reportError(prefix string, err error) {
	msg := err.Error()
	fmt.Fprintf(d.errOut, "\n%v: %v\n", prefix, msg)
	if hint := d.classifier.Classify(msg, err); hint != "" {
		fmt.Fprintf(d.errOut, "%v\n", utils.Colorize(utils.ThemeHintColor(), "Tip: "+hint))
	}
}

// scanLines reads r line by line in the background, so that the caller may
// stop waiting for input once its context is cancelled. The channel is closed
// at end of input or once done is closed, after which the returned func
// reports any read error.
func scanLines(r io.Reader, done <-chan struct{}) (<-chan string, func() error) {
	lines := make(chan string)
	var err error
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		err = scanner.Err()
	}()
	return lines, func() error {
		<-finished
		return err
	}
}
