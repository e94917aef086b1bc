// Package api provides the single typed boundary to the career mentor backend.
// Every remote call goes through the Gateway, which normalizes transport and
// HTTP failures into the Error shape so callers only ever see values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/career-mentor/internal/schemas"
)

// DefaultTimeout bounds every backend call from the caller's perspective.
const DefaultTimeout = 30 * time.Second

// Options configures the gateway.
type Options struct {
	Timeout time.Duration
	// Token, when non-empty, is sent as a bearer Authorization header.
	Token string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout}
}

// Gateway is the HTTP client for the backend contract. The base address is
// resolved once at construction with any trailing path separator stripped.
type Gateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGateway creates a gateway for the given backend base address.
func NewGateway(baseURL string, opts *Options) *Gateway {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   opts.Token,
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the resolved backend address.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Call POSTs a JSON payload to an endpoint and returns the raw response body.
func (g *Gateway) Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, endpoint)
}

// Upload POSTs a file as multipart form data (field name "file") and returns
// the raw response body.
func (g *Gateway) Upload(ctx context.Context, endpoint, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to build multipart body", Cause: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to read file", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to finalize multipart body", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, &buf)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return g.do(req, endpoint)
}

// do executes the request and normalizes the outcome.
func (g *Gateway) do(req *http.Request, endpoint string) (json.RawMessage, error) {
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: endpoint, Detail: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:     KindServer,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Detail:   extractDetail(body, resp.StatusCode),
		}
	}

	if err := schemas.ValidateResponse(endpoint, body); err != nil {
		return nil, &Error{
			Kind:     KindServer,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Detail:   "response does not match the backend contract",
			Cause:    err,
		}
	}

	return json.RawMessage(body), nil
}

// extractDetail pulls the backend's detail text from an error body, falling
// back to a generic status message when none is present.
func extractDetail(body []byte, status int) string {
	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Detail != "" {
		return errBody.Detail
	}
	return fmt.Sprintf("HTTP status %d", status)
}
