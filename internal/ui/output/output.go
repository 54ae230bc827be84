// Package output builds termenv outputs for the prism CLI.
//
// Three profiles are in use: the detected terminal profile for pretty
// output, plain ANSI for CI logs, and Ascii for machine-readable output.
// NO_COLOR always wins.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the profile detected from the terminal environment.
func ColorProfile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns the basic 16-color profile used for plain output.
func ColorProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// Plain returns the Ascii profile. JSON output and tests use it.
func Plain() termenv.Profile {
	return termenv.Ascii
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// New creates an output on w with the detected profile. A nil w means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile creates an output on w whose profile comes from profileFn.
// Outputs always claim a TTY so the chosen profile is applied as is.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	if profileFn == nil {
		profileFn = ColorProfile
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
