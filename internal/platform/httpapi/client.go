// Package httpapi is the JSON-over-HTTP client shared by the module adapters
// that talk to the ERP backend.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "factoryerp/internal/platform/errors"
	"factoryerp/internal/platform/id"
)

const RequestIDHeader = "X-Request-ID"

// Envelope is the response shape every backend endpoint shares.
type Envelope struct {
	Success *bool    `json:"success"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
}

// OK reports whether the backend declared success.
func (e Envelope) OK() bool {
	return e.Success != nil && *e.Success
}

// Reason is the backend's failure text, falling back to the validation list
// some endpoints return instead of a single error string.
func (e Envelope) Reason() string {
	if strings.TrimSpace(e.Error) != "" {
		return e.Error
	}
	if len(e.Errors) > 0 {
		return strings.Join(e.Errors, "; ")
	}
	return "unexpected response from server"
}

type Client struct {
	baseURL string
	http    *http.Client
	ids     id.Generator
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, ids id.Generator, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = id.UUID{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		ids:     ids,
		logger:  logger,
	}
}

// PostJSON sends body as JSON with a bearer token and decodes the envelope.
// An empty token sends no Authorization header. Transport and decode
// failures wrap apperrors.ErrTransport; the HTTP status is not an error on
// its own because the backend reports failures through the envelope.
func (c *Client) PostJSON(ctx context.Context, path, token string, body any) (Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Envelope{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	raw, err := c.do(req)
	if err != nil {
		return Envelope{}, err
	}
	env := Envelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: decode %s response: %v", apperrors.ErrTransport, path, err)
	}
	return env, nil
}

// GetJSON fetches path and decodes the body into out. A body carrying
// "success": false is returned as an apperrors.ErrBackend error.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	raw, err := c.do(req)
	if err != nil {
		return err
	}
	env := Envelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", apperrors.ErrTransport, path, err)
	}
	if env.Success != nil && !*env.Success {
		return fmt.Errorf("%w: %s", apperrors.ErrBackend, env.Reason())
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s payload: %v", apperrors.ErrTransport, path, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	requestID := c.ids.New()
	req.Header.Set(RequestIDHeader, requestID)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s body: %v", apperrors.ErrTransport, req.URL.Path, err)
	}
	c.logger.Debug("backend call",
		zap.String("method", req.Method),
		zap.String("endpoint", req.URL.Path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)
	return raw, nil
}
