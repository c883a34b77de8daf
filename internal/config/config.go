// config loads and validates the research configuration. Values are resolved
// as flags > environment > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/baalimago/scout/internal/utils"
)

const FileName = "researchConfig.json"

var ErrInvalidConfig = errors.New("invalid configuration")

type Configuration struct {
	Model            string `json:"model"`
	Host             string `json:"host"`
	MaxSearchResults int    `json:"max-search-results"`
}

var Default = Configuration{
	Model:            "llama3.2",
	Host:             "http://localhost:11434",
	MaxSearchResults: 5,
}

// Load the configuration file within configDir, creating it with defaults if
// it doesn't exist, then overlay the environment.
func Load(configDir string) (Configuration, error) {
	dflt := Default
	conf, err := utils.LoadConfigFromFile(configDir, FileName, &dflt)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to load config file: %w", err)
	}
	return FromEnv(conf)
}

// FromEnv overlays OLLAMA_MODEL, OLLAMA_HOST and MAX_SEARCH_RESULTS onto base.
func FromEnv(base Configuration) (Configuration, error) {
	if m := strings.TrimSpace(os.Getenv("OLLAMA_MODEL")); m != "" {
		base.Model = m
	}
	if h := strings.TrimSpace(os.Getenv("OLLAMA_HOST")); h != "" {
		base.Host = h
	}
	if r := strings.TrimSpace(os.Getenv("MAX_SEARCH_RESULTS")); r != "" {
		n, err := strconv.Atoi(r)
		if err != nil {
			return base, fmt.Errorf("%w: MAX_SEARCH_RESULTS must be an integer, got: '%v'", ErrInvalidConfig, r)
		}
		base.MaxSearchResults = n
	}
	return base, nil
}

// WithModel returns a copy with the model overridden, unless model is empty.
func (c Configuration) WithModel(model string) Configuration {
	if m := strings.TrimSpace(model); m != "" {
		c.Model = m
	}
	return c
}

// Validate the configuration. Every violation is reported.
func (c Configuration) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	u, err := url.Parse(c.Host)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("host is not a url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("host must use http or https, got: '%v'", c.Host))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("host is missing a hostname, got: '%v'", c.Host))
	}
	if c.MaxSearchResults < 1 {
		errs = append(errs, fmt.Errorf("max search results must be at least 1, got: %v", c.MaxSearchResults))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
