package internal

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// Set with buildflag if built in pipeline and not using go install
var (
	BuildVersion  = ""
	BuildChecksum = ""
)

func printVersion(w io.Writer) error {
	version := BuildVersion
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	if version == "" {
		version = bi.Main.Version
	}
	fmt.Fprintf(w, "version: %v, go version: %v\n", version, bi.GoVersion)
	if BuildChecksum != "" {
		fmt.Fprintf(w, "checksum: %v\n", BuildChecksum)
	}
	return nil
}
