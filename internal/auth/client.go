package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-mentor/internal/types"
)

// Caller issues backend calls. Satisfied by *api.Gateway.
type Caller interface {
	Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// Client wraps the auth endpoints.
type Client struct {
	caller Caller
}

// NewClient creates an auth client.
func NewClient(caller Caller) *Client {
	return &Client{caller: caller}
}

// Login exchanges credentials for a token. The request is validated
// client-side before anything goes over the wire.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	raw, err := c.caller.Call(ctx, "/auth/login", req)
	if err != nil {
		return nil, err
	}

	var token types.TokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &token, nil
}

// Signup registers a new account and returns its first token.
func (c *Client) Signup(ctx context.Context, req types.SignupRequest) (*types.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signup request: %w", err)
	}

	raw, err := c.caller.Call(ctx, "/auth/signup", req)
	if err != nil {
		return nil, err
	}

	var token types.TokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}
	return &token, nil
}
