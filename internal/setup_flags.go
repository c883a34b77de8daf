package internal

import (
	"flag"
	"fmt"
	"io"

	"github.com/baalimago/scout/internal/utils"
)

type Configurations struct {
	Interactive bool
	Quick       bool
	Verbose     bool
	PrintRaw    bool
	Version     bool
	// Model overrides the configured model, unless empty.
	Model string
}

var defaultFlags = Configurations{}

// parseFlags parses args into Configurations, returning the remaining
// positional arguments. Short and long versions of a flag may both be set
// only if they're booleans.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("scout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	interactiveShort := fs.Bool("i", defaults.Interactive, "Enter interactive mode, ask questions one by one.")
	interactiveLong := fs.Bool("interactive", defaults.Interactive, "Enter interactive mode, ask questions one by one.")

	mShort := fs.String("m", defaults.Model, "Set the Ollama model to use. Mutually exclusive with model flag.")
	mLong := fs.String("model", defaults.Model, "Set the Ollama model to use. Mutually exclusive with m flag.")

	quickShort := fs.Bool("q", defaults.Quick, "Quick search mode, list search results without AI synthesis.")
	quickLong := fs.Bool("quick", defaults.Quick, "Quick search mode, list search results without AI synthesis.")

	verboseShort := fs.Bool("v", defaults.Verbose, "Enable verbose/debug logging.")
	verboseLong := fs.Bool("verbose", defaults.Verbose, "Enable verbose/debug logging.")

	printRawShort := fs.Bool("r", defaults.PrintRaw, "Print raw markdown, don't render it.")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Print raw markdown, don't render it.")

	version := fs.Bool("version", defaults.Version, "Print version and exit.")

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, nil, fmt.Errorf("failed to parse args: %w", err)
	}

	model, err := utils.ReturnNonDefault(*mShort, *mLong, defaults.Model)
	if err != nil {
		return Configurations{}, nil, flagError(err, "m", "model")
	}

	newConf := Configurations{
		Interactive: *interactiveShort || *interactiveLong,
		Quick:       *quickShort || *quickLong,
		Verbose:     *verboseShort || *verboseLong,
		PrintRaw:    *printRawShort || *printRawLong,
		Version:     *version,
		Model:       model,
	}
	return newConf, fs.Args(), nil
}

func flagError(err error, shortFlag, longFlag string) error {
	return fmt.Errorf("flags: '%v' and '%v' are mutually exclusive, err: %w", shortFlag, longFlag, err)
}
