// Package scheduler runs work over a configured-target graph in dependency order.
package scheduler

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeStatus represents the status of a graph node during a run.
type NodeStatus string

const (
	// StatusPending indicates the node is waiting for its dependencies.
	StatusPending NodeStatus = "Pending"
	// StatusRunning indicates the node's function is executing.
	StatusRunning NodeStatus = "Running"
	// StatusCompleted indicates the node's function returned nil.
	StatusCompleted NodeStatus = "Completed"
	// StatusFailed indicates the node's function returned an error.
	StatusFailed NodeStatus = "Failed"
	// StatusSkipped indicates a dependency failed so the node never ran.
	StatusSkipped NodeStatus = "Skipped"
)

// NodeFunc is called once for every node whose dependencies completed.
type NodeFunc func(ctx context.Context, key domain.ConfiguredTargetKey) error

// Report is the outcome of a run.
type Report struct {
	// Completed lists the nodes that succeeded, in completion order.
	Completed []domain.ConfiguredTargetKey
	// Failed maps each failed node to its error.
	Failed map[domain.ConfiguredTargetKey]error
	// Skipped maps each skipped node to the failed node that blocked it.
	Skipped map[domain.ConfiguredTargetKey]domain.ConfiguredTargetKey
	// Unreached lists nodes that never became ready, which only happens on cycles
	// or when the run stopped early.
	Unreached []domain.ConfiguredTargetKey
}

// Scheduler manages the execution of node functions over a dependency graph.
type Scheduler struct {
	tracer ports.Tracer

	mu     sync.RWMutex
	status map[domain.ConfiguredTargetKey]NodeStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		tracer: tracer,
		status: make(map[domain.ConfiguredTargetKey]NodeStatus),
	}
}

// Status returns the status of key in the latest run.
func (s *Scheduler) Status(key domain.ConfiguredTargetKey) NodeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[key]
}

func (s *Scheduler) updateStatus(key domain.ConfiguredTargetKey, status NodeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[key] = status
}

func (s *Scheduler) initStatuses(keys []domain.ConfiguredTargetKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = make(map[domain.ConfiguredTargetKey]NodeStatus, len(keys))
	for _, key := range keys {
		s.status[key] = StatusPending
	}
}

// Run calls fn for every node of graph with at most parallelism concurrent calls.
// A node runs only after all of its dependencies completed; dependents of a failed
// node are skipped. Without keepGoing no new node starts after the first failure.
// The returned error is only set when ctx ends the run early.
func (s *Scheduler) Run(
	ctx context.Context,
	graph *domain.Graph,
	parallelism int,
	keepGoing bool,
	fn NodeFunc,
) (*Report, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	keys := graph.Keys()
	s.initStatuses(keys)

	state := &runState{
		s:           s,
		ctx:         ctx,
		fn:          fn,
		parallelism: parallelism,
		keepGoing:   keepGoing,
		inDegree:    make(map[domain.ConfiguredTargetKey]int, len(keys)),
		dependents:  graph.Dependents(),
		resultsCh:   make(chan result, parallelism),
		report: &Report{
			Failed:  make(map[domain.ConfiguredTargetKey]error),
			Skipped: make(map[domain.ConfiguredTargetKey]domain.ConfiguredTargetKey),
		},
	}
	for _, deps := range state.dependents {
		slices.SortFunc(deps, domain.ConfiguredTargetKey.Compare)
	}

	for _, key := range keys {
		degree := len(graph.Deps(key))
		state.inDegree[key] = degree
		if degree == 0 {
			state.ready = append(state.ready, key)
		}
	}

	err := state.loop()

	for _, key := range keys {
		if s.Status(key) == StatusPending {
			state.report.Unreached = append(state.report.Unreached, key)
		}
	}
	return state.report, err
}

type result struct {
	key domain.ConfiguredTargetKey
	err error
}

type runState struct {
	s           *Scheduler
	ctx         context.Context
	fn          NodeFunc
	parallelism int
	keepGoing   bool

	inDegree   map[domain.ConfiguredTargetKey]int
	dependents map[domain.ConfiguredTargetKey][]domain.ConfiguredTargetKey
	ready      []domain.ConfiguredTargetKey
	active     int
	stopped    bool
	resultsCh  chan result
	report     *Report
}

func (state *runState) loop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil {
			if state.active == 0 {
				return state.ctx.Err()
			}
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}
	return state.ctx.Err()
}

func (state *runState) isDone() bool {
	return state.active == 0 && (len(state.ready) == 0 || state.stopped)
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && !state.stopped && state.ctx.Err() == nil {
		key := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(key, StatusRunning)
		go state.execute(key)
	}
}

func (state *runState) execute(key domain.ConfiguredTargetKey) {
	// The span ends before the result is sent so it is recorded when Run returns.
	err := func() error {
		ctx, span := state.s.tracer.Start(state.ctx, "analyze "+key.String())
		defer span.End()
		err := state.fn(ctx, key)
		if err != nil {
			span.RecordError(err)
		}
		return err
	}()
	state.resultsCh <- result{key: key, err: err}
}

func (state *runState) handleResult(res result) {
	state.active--

	if res.err != nil {
		state.s.updateStatus(res.key, StatusFailed)
		state.report.Failed[res.key] = res.err
		state.skipDependents(res.key)
		if !state.keepGoing {
			state.stopped = true
		}
		return
	}

	state.s.updateStatus(res.key, StatusCompleted)
	state.report.Completed = append(state.report.Completed, res.key)
	for _, dep := range state.dependents[res.key] {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 && state.s.Status(dep) == StatusPending {
			state.ready = append(state.ready, dep)
		}
	}
}

func (state *runState) skipDependents(failed domain.ConfiguredTargetKey) {
	queue := slices.Clone(state.dependents[failed])
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if state.s.Status(key) != StatusPending {
			continue
		}
		state.s.updateStatus(key, StatusSkipped)
		state.report.Skipped[key] = failed
		queue = append(queue, state.dependents[key]...)
	}
}

// FailedKeys returns the failed nodes in key order.
func (r *Report) FailedKeys() []domain.ConfiguredTargetKey {
	keys := make([]domain.ConfiguredTargetKey, 0, len(r.Failed))
	for k := range r.Failed {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, domain.ConfiguredTargetKey.Compare)
	return keys
}

// Err joins every failure in key order.
func (r *Report) Err() error {
	keys := r.FailedKeys()
	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, r.Failed[k])
	}
	return errors.Join(errs...)
}
