// Package explain manages per-job-role match explanations. Requests are
// keyed by role: distinct roles may be in flight at once, duplicate requests
// for a role already loading are suppressed, and completed explanations stay
// cached until a new analysis replaces the current one.
package explain

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/types"
)

// Caller issues backend calls. Satisfied by *api.Gateway.
type Caller interface {
	Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// RoleState is the lifecycle of one role's explanation.
type RoleState int

const (
	StateIdle RoleState = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns a human-readable state name.
func (s RoleState) String() string {
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

// Event reports a role transitioning to a new state.
type Event struct {
	JobRole string
	State   RoleState
}

type explainRequest struct {
	Skills  []string `json:"skills"`
	JobRole string   `json:"job_role"`
}

// Coordinator tracks explanation state per job role. The active role is the
// one whose result should currently be surfaced; it changes on success and is
// cleared on failure so a stale panel is never shown.
type Coordinator struct {
	ctx    context.Context
	caller Caller
	store  *analysis.Store

	mu        sync.Mutex
	states    map[string]RoleState
	cache     map[string]*types.ExplanationResult
	active    string
	version   uuid.UUID // analysis instance the cache belongs to
	listeners []func(Event)
}

// NewCoordinator creates a coordinator reading skills from store. Wire cache
// invalidation with store.Subscribe(coordinator.OnAnalysisReady).
func NewCoordinator(ctx context.Context, caller Caller, store *analysis.Store) *Coordinator {
	return &Coordinator{
		ctx:    ctx,
		caller: caller,
		store:  store,
		states: make(map[string]RoleState),
		cache:  make(map[string]*types.ExplanationResult),
	}
}

// OnAnalysisReady drops all cached explanations and in-flight relevance: the
// skill context they were computed against no longer exists.
func (c *Coordinator) OnAnalysisReady(_ *types.AnalysisResult, version uuid.UUID) {
	c.mu.Lock()
	c.states = make(map[string]RoleState)
	c.cache = make(map[string]*types.ExplanationResult)
	c.active = ""
	c.version = version
	c.mu.Unlock()
}

// Request asks for an explanation of the given role. Duplicate calls while
// the role is loading are no-ops; a role already cached is surfaced without a
// new network call. Without a current analysis the call is a no-op (the UI
// never offers explanations before an upload).
func (c *Coordinator) Request(jobRole string) {
	result, version := c.store.Snapshot()
	if result == nil {
		return
	}

	c.mu.Lock()
	if version != c.version {
		// A newer analysis was published between the snapshot and here; its
		// notification already reset the state map. Marking the role loading
		// against the old skills would leave it stuck once the fetch is
		// discarded as stale.
		c.mu.Unlock()
		return
	}
	switch c.states[jobRole] {
	case StateLoading:
		c.mu.Unlock()
		return
	case StateReady:
		c.active = jobRole
		c.mu.Unlock()
		c.notify(Event{JobRole: jobRole, State: StateReady})
		return
	}
	c.states[jobRole] = StateLoading
	c.mu.Unlock()
	c.notify(Event{JobRole: jobRole, State: StateLoading})

	go c.fetch(result.ExtractedSkills, jobRole, version)
}

func (c *Coordinator) fetch(skills []string, jobRole string, version uuid.UUID) {
	raw, err := c.caller.Call(c.ctx, "/explain_match", explainRequest{
		Skills:  skills,
		JobRole: jobRole,
	})

	var explanation types.ExplanationResult
	if err == nil {
		err = json.Unmarshal(raw, &explanation)
	}

	c.mu.Lock()
	if c.version != version {
		// The analysis changed while this request was in flight.
		c.mu.Unlock()
		return
	}
	var state RoleState
	if err != nil {
		state = StateFailed
		c.states[jobRole] = StateFailed
		if c.active == jobRole {
			c.active = ""
		}
	} else {
		state = StateReady
		c.states[jobRole] = StateReady
		c.cache[jobRole] = &explanation
		c.active = jobRole
	}
	c.mu.Unlock()
	c.notify(Event{JobRole: jobRole, State: state})
}

// State returns the lifecycle state for a role.
func (c *Coordinator) State(jobRole string) RoleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[jobRole]
}

// Result returns the cached explanation for a role, if ready.
func (c *Coordinator) Result(jobRole string) (*types.ExplanationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	explanation, ok := c.cache[jobRole]
	return explanation, ok
}

// Active returns the role whose explanation is currently surfaced.
func (c *Coordinator) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != ""
}

// Subscribe registers a listener for role state transitions.
func (c *Coordinator) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Coordinator) notify(event Event) {
	c.mu.Lock()
	listeners := make([]func(Event), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}
