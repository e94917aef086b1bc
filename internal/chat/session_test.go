package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

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

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	assert.Eventually(t, func() bool { return !s.IsWaiting() }, 2*time.Second, 10*time.Millisecond)
}

func TestNewSession_SeedsGreeting(t *testing.T) {
	s := NewSession(context.Background(), newFakeCaller(), analysis.NewStore())

	messages := s.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, types.RoleAI, messages[0].Role)
	assert.Equal(t, Greeting, messages[0].Text)
	assert.False(t, s.IsWaiting())
}

func TestSend_BlankInputRejected(t *testing.T) {
	fake := newFakeCaller()
	s := NewSession(context.Background(), fake, analysis.NewStore())

	assert.ErrorIs(t, s.Send("   "), ErrEmptyMessage)
	assert.ErrorIs(t, s.Send(""), ErrEmptyMessage)
	assert.ErrorIs(t, s.Send("\n\t"), ErrEmptyMessage)

	assert.Len(t, s.Messages(), 1) // only the greeting
	select {
	case <-fake.pending:
		t.Fatal("blank input must not issue a backend call")
	default:
	}
}

func TestSend_SuccessAppendsReply(t *testing.T) {
	fake := newFakeCaller()
	s := NewSession(context.Background(), fake, analysis.NewStore())

	require.NoError(t, s.Send("What should I learn next?"))
	assert.True(t, s.IsWaiting())

	// The user message is visible before the backend responds.
	messages := s.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, types.RoleUser, messages[1].Role)
	assert.Equal(t, "What should I learn next?", messages[1].Text)

	call := fake.next(t)
	assert.Equal(t, "/chat", call.endpoint)
	call.respond <- fakeResponse{raw: json.RawMessage(`{"response": "Focus on spark."}`)}

	waitIdle(t, s)
	messages = s.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, types.RoleAI, messages[2].Role)
	assert.Equal(t, "Focus on spark.", messages[2].Text)
}

func TestSend_FailureDegradesToApology(t *testing.T) {
	fake := newFakeCaller()
	s := NewSession(context.Background(), fake, analysis.NewStore())

	require.NoError(t, s.Send("hello"))
	fake.next(t).respond <- fakeResponse{err: assert.AnError}

	waitIdle(t, s)
	messages := s.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, types.RoleUser, messages[1].Role)
	assert.Equal(t, types.RoleAI, messages[2].Role)
	assert.Equal(t, fallbackReply, messages[2].Text)
}

func TestSend_ContextReadFreshEachTurn(t *testing.T) {
	fake := newFakeCaller()
	store := analysis.NewStore()
	s := NewSession(context.Background(), fake, store)

	// First turn: no analysis yet, context must be null.
	require.NoError(t, s.Send("first"))
	call := fake.next(t)
	req := call.payload.(chatRequest)
	assert.Nil(t, req.Context)
	call.respond <- fakeResponse{raw: json.RawMessage(`{"response": "ok"}`)}
	waitIdle(t, s)

	// An analysis arrives between turns.
	result := &types.AnalysisResult{ExtractedSkills: []string{"python", "sql"}}
	store.Set(result)

	require.NoError(t, s.Send("second"))
	call = fake.next(t)
	req = call.payload.(chatRequest)
	require.NotNil(t, req.Context)
	assert.Equal(t, []string{"python", "sql"}, req.Context.ExtractedSkills)
	call.respond <- fakeResponse{raw: json.RawMessage(`{"response": "ok"}`)}
	waitIdle(t, s)
}

func TestMessages_AppendOnlyOrder(t *testing.T) {
	fake := newFakeCaller()
	s := NewSession(context.Background(), fake, analysis.NewStore())

	require.NoError(t, s.Send("one"))
	fake.next(t).respond <- fakeResponse{raw: json.RawMessage(`{"response": "reply one"}`)}
	waitIdle(t, s)

	require.NoError(t, s.Send("two"))
	fake.next(t).respond <- fakeResponse{raw: json.RawMessage(`{"response": "reply two"}`)}
	waitIdle(t, s)

	var texts []string
	for _, m := range s.Messages() {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{Greeting, "one", "reply one", "two", "reply two"}, texts)
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := NewSession(context.Background(), newFakeCaller(), analysis.NewStore())

	messages := s.Messages()
	messages[0].Text = "mutated"
	assert.Equal(t, Greeting, s.Messages()[0].Text)
}
