// Package drift runs the model-drift simulation lab: it builds one of three
// fixed reference batches, submits it to the backend's statistical check, and
// surfaces the verdict. The newest started simulation always wins; responses
// from superseded runs are dropped on arrival.
package drift

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/types"
)

// Caller issues backend calls. Satisfied by *api.Gateway.
type Caller interface {
	Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// ErrNoAnalysis is returned when a self drift check is requested before any
// resume has been analyzed. Callers disable the action instead of surfacing
// this after the fact.
var ErrNoAnalysis = errors.New("no analysis available for a drift check")

// Mode selects which reference batch is submitted.
type Mode int

const (
	// ModeBaseline sends in-distribution tech/business skill sets; the
	// expected verdict is "no drift".
	ModeBaseline Mode = iota
	// ModeOutOfDomain sends skill sets from unrelated fields (medical,
	// culinary, art, agriculture); the expected verdict is "drift".
	ModeOutOfDomain
	// ModeFromCurrentAnalysis repeats the uploaded resume's extracted
	// skills to form the batch. Requires a current analysis.
	ModeFromCurrentAnalysis
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeBaseline:
		return "baseline"
	case ModeOutOfDomain:
		return "out-of-domain"
	case ModeFromCurrentAnalysis:
		return "resume"
	default:
		return "unknown"
	}
}

// batchSize is the number of skill lists every drift request carries.
const batchSize = 4

var baselineBatch = [][]string{
	{"python", "data analysis", "sql", "machine learning"},
	{"java", "software engineering", "react", "node.js"},
	{"project management", "agile", "communication"},
	{"python", "pandas", "numpy", "scikit-learn"},
}

var outOfDomainBatch = [][]string{
	{"surgery", "patient care", "anatomy", "medicine"},
	{"cooking", "chef", "culinary arts", "food safety"},
	{"painting", "art", "sculpture", "history"},
	{"farming", "agriculture", "soil", "crops"},
}

// placeholderSkills stands in when extraction produced zero skills.
var placeholderSkills = []string{"python", "generic"}

type driftRequest struct {
	SkillsBatch [][]string `json:"skills_batch"`
}

// BatchForMode builds the 4-element skills batch for a simulation mode.
// ModeFromCurrentAnalysis returns ErrNoAnalysis when result is nil.
func BatchForMode(mode Mode, result *types.AnalysisResult) ([][]string, error) {
	switch mode {
	case ModeBaseline:
		return baselineBatch, nil
	case ModeOutOfDomain:
		return outOfDomainBatch, nil
	case ModeFromCurrentAnalysis:
		if result == nil {
			return nil, ErrNoAnalysis
		}
		skills := result.ExtractedSkills
		if len(skills) == 0 {
			skills = placeholderSkills
		}
		batch := make([][]string, batchSize)
		for i := range batch {
			batch[i] = skills
		}
		return batch, nil
	default:
		return nil, errors.New("unknown drift mode")
	}
}

// State is the simulation lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
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

// Coordinator owns the drift simulation lifecycle. Each Simulate call fully
// replaces the prior verdict; in-flight runs are tagged with a monotonically
// increasing sequence number and only the newest started run may complete.
type Coordinator struct {
	ctx    context.Context
	caller Caller
	store  *analysis.Store

	mu        sync.Mutex
	state     State
	result    *types.DriftCheckResult
	mode      Mode
	seq       uint64
	listeners []func(State)
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator(ctx context.Context, caller Caller, store *analysis.Store) *Coordinator {
	return &Coordinator{ctx: ctx, caller: caller, store: store}
}

// Simulate starts a drift check for the given mode. Starting a new simulation
// while one is loading is allowed; the older run's response is discarded.
func (c *Coordinator) Simulate(mode Mode) error {
	batch, err := BatchForMode(mode, c.store.Get())
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.result = nil
	c.mode = mode
	c.mu.Unlock()
	c.notify(StateLoading)

	go c.run(batch, seq)
	return nil
}

func (c *Coordinator) run(batch [][]string, seq uint64) {
	raw, err := c.caller.Call(c.ctx, "/debug_drift", driftRequest{SkillsBatch: batch})

	var verdict types.DriftCheckResult
	if err == nil {
		err = json.Unmarshal(raw, &verdict)
	}

	c.mu.Lock()
	if c.seq != seq {
		// A newer simulation started while this one was in flight.
		c.mu.Unlock()
		return
	}
	var state State
	if err != nil {
		state = StateFailed
	} else {
		state = StateReady
		c.result = &verdict
	}
	c.state = state
	c.mu.Unlock()
	c.notify(state)
}

// State returns the current simulation state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the latest verdict, if ready.
func (c *Coordinator) Result() (*types.DriftCheckResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.result != nil
}

// Mode returns the mode of the most recently started simulation.
func (c *Coordinator) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
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
