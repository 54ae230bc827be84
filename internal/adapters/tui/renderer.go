package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
)

var _ ports.EventHandler = (*Renderer)(nil)

// Renderer runs the Bubble Tea program and forwards pipeline output to it.
type Renderer struct {
	program *tea.Program
	model   *Model
	done    chan struct{}
	err     error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		done:    make(chan struct{}),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, r.err = r.program.Run()
		close(r.done)
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	<-r.done
	return r.err
}

// Done is closed once the TUI has terminated, including when the user quits.
func (r *Renderer) Done() <-chan struct{} {
	return r.done
}

// Handle implements ports.EventHandler.
func (r *Renderer) Handle(ev domain.Event) {
	r.program.Send(MsgEvent{Event: ev})
}

// Show replaces the tree with the graph of a finished update.
func (r *Renderer) Show(result *domain.AnalysisResult, summary domain.UpdateSummary) {
	r.program.Send(NewGraphMsg(result, summary))
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
