package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/prism/internal/ui/output"
	"go.trai.ch/prism/internal/ui/style"
)

// LabelKey is the attribute promoted to a "[label]" prefix, the way the
// event renderer prints diagnostics.
const LabelKey = "label"

type levelStyle struct {
	symbol string
	color  lipgloss.Color
}

var levelStyles = map[slog.Level]levelStyle{
	slog.LevelDebug: {symbol: style.Dot, color: style.Iris},
	slog.LevelInfo:  {color: style.Slate},
	slog.LevelWarn:  {symbol: style.Warning, color: style.Yellow},
	slog.LevelError: {symbol: style.Cross, color: style.Red},
}

// PrettyHandler is a slog.Handler writing one colored line per record.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	label  string
	prefix string
}

// NewPrettyHandler creates a PrettyHandler writing to w, stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether records at level are written.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	st, ok := levelStyles[r.Level]
	if !ok {
		st = levelStyles[slog.LevelInfo]
	}

	label := h.label
	parts := append([]string(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if h.prefix == "" && a.Key == LabelKey {
			label = a.Value.String()
			return true
		}
		parts = append(parts, h.format(a))
		return true
	})

	var b strings.Builder
	if label != "" {
		b.WriteString("[" + label + "] ")
	}
	if st.symbol != "" {
		b.WriteString(st.symbol + " ")
	}
	b.WriteString(r.Message)
	for _, p := range parts {
		b.WriteString(" " + p)
	}

	line := h.out.String(b.String()).Foreground(h.out.Color(string(st.color)))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		if h.prefix == "" && a.Key == LabelKey {
			next.label = a.Value.String()
			continue
		}
		next.attrs = append(next.attrs, h.format(a))
	}
	return next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
// Groups nest.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	c := *h
	c.attrs = append([]string(nil), h.attrs...)
	return &c
}

func (h *PrettyHandler) format(a slog.Attr) string {
	v := a.Value.Resolve().String()
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		v = strconv.Quote(v)
	}
	return h.prefix + a.Key + "=" + v
}
