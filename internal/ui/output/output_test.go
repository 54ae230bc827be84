package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/prism/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
	assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
}

func TestColorProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())

	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
}

func TestNewWithProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile func() termenv.Profile
		want    string
	}{
		{name: "plain", profile: output.Plain, want: "label"},
		{name: "ansi", profile: func() termenv.Profile { return termenv.ANSI }, want: "\x1b[1mlabel\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			out := output.NewWithProfile(&buf, tt.profile)
			_, _ = out.WriteString(out.String("label").Bold().String())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNew_DefaultsToStderr(t *testing.T) {
	assert.NotNil(t, output.New(nil))
	assert.NotNil(t, output.NewWithProfile(nil, nil))
}
