// Package linear prints pipeline events and update summaries line by line.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/prism/internal/ui/output"
	"go.trai.ch/prism/internal/ui/style"
)

var _ ports.EventHandler = (*Renderer)(nil)

// Renderer streams events to stderr as they arrive and prints summaries to stdout.
// It is safe for concurrent use.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	err    *termenv.Output

	mu       sync.Mutex
	errors   int
	warnings int
}

// NewRenderer creates a renderer. A nil profile selects colors from the environment.
func NewRenderer(stdout, stderr io.Writer, profile func() termenv.Profile) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if profile == nil {
		profile = output.ColorProfileANSI
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		out:    output.NewWithProfile(stdout, profile),
		err:    output.NewWithProfile(stderr, profile),
	}
}

// Handle implements ports.EventHandler.
func (r *Renderer) Handle(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var symbol string
	switch ev.Kind {
	case domain.EventError:
		r.errors++
		symbol = r.err.String(style.Cross).Foreground(r.err.Color(string(style.Red))).String()
	case domain.EventWarning:
		r.warnings++
		symbol = r.err.String(style.Warning).Foreground(r.err.Color(string(style.Yellow))).String()
	default:
		symbol = r.err.String(style.Dot).Faint().String()
	}

	msg := strings.TrimRight(ev.Message, "\n")
	if ev.Label == "" {
		_, _ = fmt.Fprintf(r.stderr, "%s %s\n", symbol, msg)
		return
	}
	prefix := r.err.String(fmt.Sprintf("[%s]", ev.Label)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s %s\n", prefix, symbol, msg)
}

// Counts returns the number of error and warning events handled so far.
func (r *Renderer) Counts() (errors, warnings int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors, r.warnings
}

// Summary prints the configured targets of an update and its error text.
func (r *Renderer) Summary(s domain.UpdateSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	header := fmt.Sprintf("Analyzed %s in %s (%d visited, %d evaluated, %s) in %s",
		plural(len(s.Targets), "target"),
		plural(len(s.Configurations), "configuration"),
		s.Visited, s.Evaluated,
		plural(s.Actions, "action"),
		s.Elapsed.Round(time.Millisecond),
	)
	_, _ = fmt.Fprintln(r.stdout, r.out.String(header).Bold().Foreground(r.out.Color(string(style.Iris))))

	check := r.out.String(style.Check).Foreground(r.out.Color(string(style.Green))).String()
	for _, t := range s.Targets {
		cfg := r.out.String(t.Configuration).Foreground(r.out.Color(string(style.Slate))).String()
		_, _ = fmt.Fprintf(r.stdout, "%s %s %s\n", check, t.Label, cfg)
		for _, f := range t.Files {
			_, _ = fmt.Fprintf(r.stdout, "    %s\n", f)
		}
	}

	if s.Error == "" {
		return
	}
	cross := r.out.String(style.Cross).Foreground(r.out.Color(string(style.Red))).String()
	for _, line := range strings.Split(strings.TrimRight(s.Error, "\n"), "\n") {
		_, _ = fmt.Fprintf(r.stdout, "%s %s\n", cross, line)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
