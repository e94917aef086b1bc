package explain

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/types"
)

type fakeResponse struct {
	raw json.RawMessage
	err error
}

type pendingCall struct {
	endpoint string
	payload  any
	respond  chan fakeResponse
}

type fakeCaller struct {
	pending chan *pendingCall
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{pending: make(chan *pendingCall, 16)}
}

func (f *fakeCaller) Call(_ context.Context, endpoint string, payload any) (json.RawMessage, error) {
	call := &pendingCall{endpoint: endpoint, payload: payload, respond: make(chan fakeResponse)}
	f.pending <- call
	resp := <-call.respond
	return resp.raw, resp.err
}

func (f *fakeCaller) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case call := <-f.pending:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a backend call")
		return nil
	}
}

func (f *fakeCaller) assertNoCall(t *testing.T) {
	t.Helper()
	select {
	case <-f.pending:
		t.Fatal("unexpected backend call was issued")
	default:
	}
}

func newTestCoordinator(skills ...string) (*Coordinator, *fakeCaller, *analysis.Store) {
	fake := newFakeCaller()
	store := analysis.NewStore()
	c := NewCoordinator(context.Background(), fake, store)
	store.Subscribe(c.OnAnalysisReady)
	store.Set(&types.AnalysisResult{ExtractedSkills: skills})
	return c, fake, store
}

func subscribeEvents(c *Coordinator) <-chan Event {
	events := make(chan Event, 32)
	c.Subscribe(func(e Event) { events <- e })
	return events
}

func waitState(t *testing.T, events <-chan Event, role string, state RoleState) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-events:
			if e.JobRole == role && e.State == state {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s to reach %s", role, state)
		}
	}
}

func explanationBody(role string) json.RawMessage {
	return json.RawMessage(`{"job_role": "` + role + `", "explanation": [{"feature": "python", "value": 0.8}]}`)
}

func TestRequest_SuccessCachesAndActivates(t *testing.T) {
	c, fake, _ := newTestCoordinator("python", "sql")
	events := subscribeEvents(c)

	c.Request("Data Analyst")
	assert.Equal(t, StateLoading, c.State("Data Analyst"))

	call := fake.next(t)
	assert.Equal(t, "/explain_match", call.endpoint)
	req, ok := call.payload.(explainRequest)
	require.True(t, ok)
	assert.Equal(t, []string{"python", "sql"}, req.Skills)
	assert.Equal(t, "Data Analyst", req.JobRole)

	call.respond <- fakeResponse{raw: explanationBody("Data Analyst")}
	waitState(t, events, "Data Analyst", StateReady)

	result, ok := c.Result("Data Analyst")
	require.True(t, ok)
	assert.Equal(t, "Data Analyst", result.JobRole)

	active, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, "Data Analyst", active)
}

func TestRequest_SingleFlightPerRole(t *testing.T) {
	c, fake, _ := newTestCoordinator("python")

	c.Request("Data Scientist")
	c.Request("Data Scientist")

	first := fake.next(t)
	fake.assertNoCall(t)

	first.respond <- fakeResponse{raw: explanationBody("Data Scientist")}
}

func TestRequest_DistinctRolesInFlightSimultaneously(t *testing.T) {
	c, fake, _ := newTestCoordinator("python")
	events := subscribeEvents(c)

	c.Request("Data Analyst")
	c.Request("Backend Engineer")

	callA := fake.next(t)
	callB := fake.next(t)
	roles := []string{callA.payload.(explainRequest).JobRole, callB.payload.(explainRequest).JobRole}
	assert.ElementsMatch(t, []string{"Data Analyst", "Backend Engineer"}, roles)

	callA.respond <- fakeResponse{raw: explanationBody(roles[0])}
	callB.respond <- fakeResponse{raw: explanationBody(roles[1])}
	waitState(t, events, "Data Analyst", StateReady)
	waitState(t, events, "Backend Engineer", StateReady)
}

func TestRequest_CachedRoleDoesNotReissueCall(t *testing.T) {
	c, fake, _ := newTestCoordinator("python")
	events := subscribeEvents(c)

	c.Request("Data Analyst")
	fake.next(t).respond <- fakeResponse{raw: explanationBody("Data Analyst")}
	waitState(t, events, "Data Analyst", StateReady)

	// Re-selecting a ready role surfaces the cache without a network call.
	c.Request("Data Analyst")
	fake.assertNoCall(t)

	active, _ := c.Active()
	assert.Equal(t, "Data Analyst", active)
}

func TestRequest_FailureClearsActive(t *testing.T) {
	c, fake, _ := newTestCoordinator("python")
	events := subscribeEvents(c)

	c.Request("Data Analyst")
	fake.next(t).respond <- fakeResponse{raw: explanationBody("Data Analyst")}
	waitState(t, events, "Data Analyst", StateReady)

	c.Request("Backend Engineer")
	fake.next(t).respond <- fakeResponse{err: assert.AnError}
	waitState(t, events, "Backend Engineer", StateFailed)

	// The failed role never became active, and the previous active pointer
	// was untouched by the failure of a different role.
	assert.Equal(t, StateFailed, c.State("Backend Engineer"))
	active, ok := c.Active()
	assert.True(t, ok)
	assert.Equal(t, "Data Analyst", active)
}

func TestRequest_FailureOfActiveRoleClearsPointer(t *testing.T) {
	c, fake, store := newTestCoordinator("python")
	events := subscribeEvents(c)

	c.Request("Data Analyst")
	fake.next(t).respond <- fakeResponse{raw: explanationBody("Data Analyst")}
	waitState(t, events, "Data Analyst", StateReady)

	// New analysis wipes the cache; the same role now fails.
	store.Set(&types.AnalysisResult{ExtractedSkills: []string{"go"}})
	c.Request("Data Analyst")
	fake.next(t).respond <- fakeResponse{err: assert.AnError}
	waitState(t, events, "Data Analyst", StateFailed)

	_, ok := c.Active()
	assert.False(t, ok)
}

func TestOnAnalysisReady_InvalidatesCache(t *testing.T) {
	c, fake, store := newTestCoordinator("python")
	events := subscribeEvents(c)

	c.Request("Data Analyst")
	fake.next(t).respond <- fakeResponse{raw: explanationBody("Data Analyst")}
	waitState(t, events, "Data Analyst", StateReady)

	store.Set(&types.AnalysisResult{ExtractedSkills: []string{"go"}})

	assert.Equal(t, StateIdle, c.State("Data Analyst"))
	_, ok := c.Result("Data Analyst")
	assert.False(t, ok)
	_, ok = c.Active()
	assert.False(t, ok)

	// A fresh request goes back to the network.
	c.Request("Data Analyst")
	fake.next(t)
}

func TestFetch_StaleCompletionDiscardedAfterNewAnalysis(t *testing.T) {
	c, fake, store := newTestCoordinator("python")

	c.Request("Data Analyst")
	call := fake.next(t)

	// The analysis is replaced while the explanation is in flight.
	store.Set(&types.AnalysisResult{ExtractedSkills: []string{"go"}})
	call.respond <- fakeResponse{raw: explanationBody("Data Analyst")}

	assert.Eventually(t, func() bool {
		_, cached := c.Result("Data Analyst")
		return !cached && c.State("Data Analyst") == StateIdle
	}, time.Second, 10*time.Millisecond)
}

func TestRequest_SupersededAnalysisSnapshotIgnored(t *testing.T) {
	c, fake, _ := newTestCoordinator("python")

	// A newer analysis notification reaches the coordinator while a caller is
	// still acting on the previous store snapshot. The superseded request must
	// not mark the role loading in the freshly reset state map.
	c.OnAnalysisReady(&types.AnalysisResult{ExtractedSkills: []string{"go"}}, uuid.New())

	c.Request("Data Analyst")
	fake.assertNoCall(t)
	assert.Equal(t, StateIdle, c.State("Data Analyst"))
}

func TestRequest_NoAnalysisIsNoOp(t *testing.T) {
	fake := newFakeCaller()
	store := analysis.NewStore()
	c := NewCoordinator(context.Background(), fake, store)

	c.Request("Data Analyst")
	fake.assertNoCall(t)
	assert.Equal(t, StateIdle, c.State("Data Analyst"))
}

func TestOnAnalysisReady_VersionTracking(t *testing.T) {
	fake := newFakeCaller()
	store := analysis.NewStore()
	c := NewCoordinator(context.Background(), fake, store)
	store.Subscribe(c.OnAnalysisReady)

	store.Set(&types.AnalysisResult{ExtractedSkills: []string{"python"}})
	assert.NotEqual(t, uuid.Nil, store.Version())
}
