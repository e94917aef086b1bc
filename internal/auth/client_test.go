package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-mentor/internal/types"
)

type recordingCaller struct {
	endpoint string
	payload  any
	raw      json.RawMessage
	err      error
	calls    int
}

func (r *recordingCaller) Call(_ context.Context, endpoint string, payload any) (json.RawMessage, error) {
	r.endpoint = endpoint
	r.payload = payload
	r.calls++
	return r.raw, r.err
}

func TestLogin_Success(t *testing.T) {
	caller := &recordingCaller{raw: json.RawMessage(`{
		"access_token": "abc123",
		"token_type": "bearer",
		"user": {"id": 3, "email": "ada@example.com", "fullname": "Ada Lovelace"}
	}`)}
	client := NewClient(caller)

	token, err := client.Login(context.Background(), types.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "/auth/login", caller.endpoint)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(3), token.User.ID)
	assert.Equal(t, "ada@example.com", token.User.Email)
}

func TestLogin_InvalidRequestNeverHitsWire(t *testing.T) {
	caller := &recordingCaller{}
	client := NewClient(caller)

	_, err := client.Login(context.Background(), types.LoginRequest{
		Email:    "not-an-email",
		Password: "hunter22",
	})
	require.Error(t, err)
	assert.Zero(t, caller.calls)

	_, err = client.Login(context.Background(), types.LoginRequest{
		Email: "ada@example.com",
	})
	require.Error(t, err)
	assert.Zero(t, caller.calls)
}

func TestLogin_CallErrorPropagates(t *testing.T) {
	caller := &recordingCaller{err: assert.AnError}
	client := NewClient(caller)

	_, err := client.Login(context.Background(), types.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSignup_Success(t *testing.T) {
	caller := &recordingCaller{raw: json.RawMessage(`{
		"access_token": "fresh",
		"token_type": "bearer",
		"user": {"id": 9, "email": "new@example.com", "fullname": "New User"}
	}`)}
	client := NewClient(caller)

	token, err := client.Signup(context.Background(), types.SignupRequest{
		Email:    "new@example.com",
		Fullname: "New User",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.Equal(t, "/auth/signup", caller.endpoint)
	req, ok := caller.payload.(types.SignupRequest)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", req.Email)
	assert.Equal(t, "fresh", token.AccessToken)
}

func TestSignup_ValidationFailures(t *testing.T) {
	caller := &recordingCaller{}
	client := NewClient(caller)

	cases := []types.SignupRequest{
		{Email: "", Fullname: "A", Password: "longenough"},
		{Email: "bad", Fullname: "A", Password: "longenough"},
		{Email: "ok@example.com", Fullname: "", Password: "longenough"},
		{Email: "ok@example.com", Fullname: "A", Password: "short"},
	}
	for _, req := range cases {
		_, err := client.Signup(context.Background(), req)
		assert.Error(t, err)
	}
	assert.Zero(t, caller.calls)
}
