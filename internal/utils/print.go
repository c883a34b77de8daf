package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

const bannerWidth = 60

// Separator is the line framing results and the interactive banner.
func Separator() string {
	return strings.Repeat("=", bannerWidth)
}

// RenderMarkdown renders md for the terminal, word wrapped at width.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// AttemptPrettyPrint writes the markdown in msg to w, rendered if w is a
// terminal and raw is false. If rendering fails, msg is written as is.
func AttemptPrettyPrint(w io.Writer, msg string, raw bool) error {
	if raw || NoColor() || !IsTerminal(w) {
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	rendered, err := RenderMarkdown(msg, TermWidth())
	if err != nil {
		_, err = fmt.Fprintln(w, msg)
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
