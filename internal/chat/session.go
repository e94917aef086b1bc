// Package chat maintains the mentor conversation: an append-only transcript
// where every turn forwards the current analysis as context. Chat is an
// advisory feature, so backend failures degrade to an in-conversation apology
// instead of an error state.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/types"
)

// Caller issues backend calls. Satisfied by *api.Gateway.
type Caller interface {
	Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// ErrEmptyMessage is returned when the input is blank or whitespace-only.
// Nothing is appended and no call is made.
var ErrEmptyMessage = errors.New("chat message is empty")

// Greeting seeds every new session.
const Greeting = "Hi! I am your AI Career Mentor. Ask me anything about your job matches or skills!"

// fallbackReply is appended when the backend cannot be reached.
const fallbackReply = "Sorry, I'm having trouble connecting to the server."

type chatRequest struct {
	Message string                `json:"message"`
	Context *types.AnalysisResult `json:"context"`
}

// Session is one mentor conversation. The transcript is append-only; the
// analysis context is read fresh from the store on every send, so a later
// upload changes future turns without resetting the session.
type Session struct {
	ctx    context.Context
	caller Caller
	store  *analysis.Store

	mu        sync.Mutex
	messages  []types.ChatMessage
	waiting   bool
	listeners []func()
}

// NewSession creates a session seeded with the mentor greeting.
func NewSession(ctx context.Context, caller Caller, store *analysis.Store) *Session {
	return &Session{
		ctx:    ctx,
		caller: caller,
		store:  store,
		messages: []types.ChatMessage{
			{Role: types.RoleAI, Text: Greeting},
		},
	}
}

// Send appends the user's message and asks the mentor for a reply. The user
// message is visible immediately, even if the backend call later fails.
func (s *Session) Send(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	// Context is captured at send time, not session start.
	analysisContext := s.store.Get()

	s.mu.Lock()
	s.messages = append(s.messages, types.ChatMessage{Role: types.RoleUser, Text: text})
	s.waiting = true
	s.mu.Unlock()
	s.notify()

	go s.exchange(text, analysisContext)
	return nil
}

func (s *Session) exchange(text string, analysisContext *types.AnalysisResult) {
	raw, err := s.caller.Call(s.ctx, "/chat", chatRequest{
		Message: text,
		Context: analysisContext,
	})

	var body struct {
		Response string `json:"response"`
	}
	if err == nil {
		err = json.Unmarshal(raw, &body)
	}

	reply := body.Response
	if err != nil {
		reply = fallbackReply
	}

	s.mu.Lock()
	s.messages = append(s.messages, types.ChatMessage{Role: types.RoleAI, Text: reply})
	s.waiting = false
	s.mu.Unlock()
	s.notify()
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]types.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// IsWaiting reports whether a mentor reply is pending.
func (s *Session) IsWaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting
}

// Subscribe registers a listener for transcript changes.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
