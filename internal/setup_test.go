package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/scout/internal/config"
)

func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SCOUT_CONFIG_HOME", dir)
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("MAX_SEARCH_RESULTS", "")
	t.Setenv("DEBUG", "")
	return dir
}

func TestSetup(t *testing.T) {
	t.Run("it should require a query unless interactive", func(t *testing.T) {
		setupTestEnv(t)
		_, err := Setup([]string{"-q"}, &bytes.Buffer{}, &bytes.Buffer{})
		if !errors.Is(err, ErrNoQuery) {
			t.Fatalf("expected ErrNoQuery, got: %v", err)
		}
	})

	t.Run("it should build a single query app", func(t *testing.T) {
		dir := setupTestEnv(t)
		app, err := Setup([]string{"-q", "rust", "web", "frameworks"}, &bytes.Buffer{}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, app.Mode, SINGLE)
		testboil.FailTestIfDiff(t, app.Query, "rust web frameworks")
		testboil.FailTestIfDiff(t, app.Quick, true)
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err != nil {
			t.Fatalf("expected config file to be created: %v", err)
		}
	})

	t.Run("it should build an interactive app", func(t *testing.T) {
		setupTestEnv(t)
		app, err := Setup([]string{"-i"}, &bytes.Buffer{}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, app.Mode, INTERACTIVE)
	})

	t.Run("it should fail fast on invalid config", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("OLLAMA_HOST", "not a url")
		_, err := Setup([]string{"q"}, &bytes.Buffer{}, &bytes.Buffer{})
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got: %v", err)
		}
	})

	t.Run("it should let the model flag override the environment", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("OLLAMA_MODEL", "from-env")
		flagSet, _, err := parseFlags(defaultFlags, []string{"-m", "from-flag", "q"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		conf, err := loadConfig(flagSet)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, conf.Model, "from-flag")
	})

	t.Run("it should print the version", func(t *testing.T) {
		setupTestEnv(t)
		var out bytes.Buffer
		_, err := Setup([]string{"-version"}, &out, &bytes.Buffer{})
		if !errors.Is(err, ErrUserInitiatedExit) {
			t.Fatalf("expected ErrUserInitiatedExit, got: %v", err)
		}
		testboil.AssertStringContains(t, out.String(), "version: ")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Info("hidden")
	newLogger(&buf, false).Warn("shown")
	testboil.FailTestIfDiff(t, bytes.Contains(buf.Bytes(), []byte("hidden")), false)
	testboil.AssertStringContains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, true).Debug("debugging")
	testboil.AssertStringContains(t, buf.String(), "debugging")
}
