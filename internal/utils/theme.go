package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Theme holds ANSI color configuration for terminal output.
// Values are raw ANSI escape sequences (e.g. "\u001b[38;2;120;140;160m").
//
// It's loaded from <config-dir>/theme.json on startup. If NO_COLOR is set
// truthy, all colorization is disabled.
type Theme struct {
	Banner string `json:"banner"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
	Hint   string `json:"hint"`
}

func defaultTheme() *Theme {
	return &Theme{
		Banner: "\u001b[38;2;110;130;150m",
		Prompt: "\u001b[36m",
		Answer: "\u001b[34m",
		Hint:   "\u001b[33m",
	}
}

var globalTheme = *defaultTheme()

// LoadTheme loads (and possibly creates) the theme.json file within the config dir.
func LoadTheme(configDirPath string) error {
	conf, err := LoadConfigFromFile(configDirPath, "theme.json", defaultTheme())
	if err != nil {
		return fmt.Errorf("load theme config: %w", err)
	}
	globalTheme = conf
	return nil
}

// ThemeConfigPath returns the fully qualified theme.json path.
func ThemeConfigPath(configDirPath string) string {
	return filepath.Join(configDirPath, "theme.json")
}

// NoColor reports whether color output should be disabled.
func NoColor() bool {
	return misc.Truthy(os.Getenv("NO_COLOR"))
}

const ansiReset = "\u001b[0m"

// Colorize wraps s with the given ANSI color code unless NO_COLOR is set or color is empty.
func Colorize(color, s string) string {
	if NoColor() || color == "" {
		return s
	}
	return color + s + ansiReset
}

func ThemeBannerColor() string { return globalTheme.Banner }
func ThemePromptColor() string { return globalTheme.Prompt }
func ThemeAnswerColor() string { return globalTheme.Answer }
func ThemeHintColor() string   { return globalTheme.Hint }
