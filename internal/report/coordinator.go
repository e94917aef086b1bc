// Package report owns the lifecycle of career report generation. Exactly one
// report is requested per analysis; a newer analysis supersedes any pending
// request, and the superseded response is discarded when it arrives.
package report

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/types"
)

// Caller issues backend calls. Satisfied by *api.Gateway.
type Caller interface {
	Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// State is the report lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is an endpoint of the lifecycle.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed
}

type generateRequest struct {
	Skills  []string         `json:"skills"`
	Matches []types.JobMatch `json:"matches"`
}

// Coordinator fires one /generate_report request per analysis instance.
// Wire it up with store.Subscribe(coordinator.OnAnalysisReady).
type Coordinator struct {
	ctx    context.Context
	caller Caller

	mu        sync.Mutex
	state     State
	report    string
	version   uuid.UUID // analysis instance the current state belongs to
	listeners []func(State)
}

// NewCoordinator creates an idle coordinator. Requests started by analysis
// notifications run on ctx.
func NewCoordinator(ctx context.Context, caller Caller) *Coordinator {
	return &Coordinator{ctx: ctx, caller: caller, state: StateNotStarted}
}

// OnAnalysisReady starts report generation for a new analysis. Any request
// still pending for an earlier analysis is superseded: its response is
// ignored on arrival.
func (c *Coordinator) OnAnalysisReady(result *types.AnalysisResult, version uuid.UUID) {
	if result == nil {
		return
	}

	c.mu.Lock()
	c.state = StateLoading
	c.report = ""
	c.version = version
	c.mu.Unlock()
	c.notify(StateLoading)

	go c.generate(result, version)
}

func (c *Coordinator) generate(result *types.AnalysisResult, version uuid.UUID) {
	raw, err := c.caller.Call(c.ctx, "/generate_report", generateRequest{
		Skills:  result.ExtractedSkills,
		Matches: result.Matches,
	})

	var body struct {
		Report string `json:"report"`
	}
	if err == nil {
		err = json.Unmarshal(raw, &body)
	}

	c.mu.Lock()
	if c.version != version {
		// A newer analysis took over while this request was in flight.
		c.mu.Unlock()
		return
	}
	var state State
	if err != nil {
		state = StateFailed
	} else {
		state = StateReady
		c.report = body.Report
	}
	c.state = state
	c.mu.Unlock()
	c.notify(state)
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Report returns the generated markdown and whether it is ready.
func (c *Coordinator) Report() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report, c.state == StateReady
}

// Subscribe registers a listener for state transitions.
func (c *Coordinator) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Coordinator) notify(state State) {
	c.mu.Lock()
	listeners := make([]func(State), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
