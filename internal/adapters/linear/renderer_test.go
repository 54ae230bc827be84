package linear_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/prism/internal/adapters/linear"
	"go.trai.ch/prism/internal/core/domain"
)

func ascii() termenv.Profile { return termenv.Ascii }

func TestRenderer_Events(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, ascii)

	r.Handle(domain.Event{Kind: domain.EventInfo, Message: "loading 2 packages"})
	r.Handle(domain.Event{
		Kind:    domain.EventWarning,
		Label:   "//good:user",
		Message: "non-test target depends on testonly target //good:data",
	})
	r.Handle(domain.Event{Kind: domain.EventError, Label: "//good:dep", Message: "target is not visible\n"})

	assert.Empty(t, stdout.String())
	g := goldie.New(t)
	g.Assert(t, "events", stderr.Bytes())

	errs, warnings := r.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warnings)
}

func TestRenderer_Summary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, ascii)

	r.Summary(domain.UpdateSummary{
		Targets: []domain.SummaryTarget{
			{Label: domain.MustParseLabel("//good:gen"), Configuration: "k8-fastbuild#abcdef01", Files: []string{"good/a.out"}},
			{Label: domain.MustParseLabel("//good:t"), Configuration: "k8-fastbuild#abcdef01", Files: []string{"good/a.txt"}},
		},
		Configurations: []string{"k8-fastbuild#abcdef01"},
		Visited:        5,
		Evaluated:      2,
		Actions:        2,
		Error:          "analysis of target '//good:dep' failed: target is not visible",
		Elapsed:        1500 * time.Millisecond,
	})

	assert.Empty(t, stderr.String())
	g := goldie.New(t)
	g.Assert(t, "summary", stdout.Bytes())
}

func TestRenderer_SummaryWithoutTargets(t *testing.T) {
	var stdout bytes.Buffer
	r := linear.NewRenderer(&stdout, &bytes.Buffer{}, ascii)

	r.Summary(domain.UpdateSummary{Actions: 1})
	assert.Equal(t, "Analyzed 0 targets in 0 configurations (0 visited, 0 evaluated, 1 action) in 0s\n", stdout.String())
}

func TestRenderer_ConcurrentEvents(t *testing.T) {
	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr, ascii)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			r.Handle(domain.Event{Kind: domain.EventError, Label: "//p:x", Message: "failed"})
		})
	}
	wg.Wait()

	errs, _ := r.Counts()
	assert.Equal(t, 20, errs)
	assert.Equal(t, 20, bytes.Count(stderr.Bytes(), []byte("\n")))
}

func TestRenderer_Colors(t *testing.T) {
	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr, func() termenv.Profile { return termenv.ANSI })

	r.Handle(domain.Event{Kind: domain.EventError, Label: "//p:x", Message: "failed"})
	assert.Contains(t, stderr.String(), "\x1b[")
}

func TestRenderer_NilWriters(_ *testing.T) {
	_ = linear.NewRenderer(nil, nil, nil)
}
