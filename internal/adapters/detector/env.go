// Package detector picks how command results are printed.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is the format of command output.
type OutputMode int

const (
	// ModeAuto chooses from the environment.
	ModeAuto OutputMode = iota
	// ModePretty prints colored, styled output for terminals.
	ModePretty
	// ModePlain prints uncolored lines for CI logs and pipes.
	ModePlain
	// ModeJSON prints a machine-readable document and JSON logs.
	ModeJSON
)

// String returns the flag value that selects m.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModePlain when stdout is not a terminal or CI is set,
// and ModePretty otherwise.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user's --output value to the detected mode.
// Unknown values keep the detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "plain", "ci":
		return ModePlain
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
