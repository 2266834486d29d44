// Package rest implements the process directory port against the remote
// engine's HTTP surface. All operations are single-shot: no retry, no
// caching; errors are returned as typed values.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/session"
)

var (
	// ErrUnauthorized is returned when the remote engine rejects the token.
	ErrUnauthorized = errors.New("directory: unauthorized")

	// ErrNotFound is returned when the requested context or instance does
	// not exist.
	ErrNotFound = errors.New("directory: not found")
)

// Config holds directory client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the process directory client. Safe for concurrent use; the
// bearer token slot may be swapped at any time.
type Client struct {
	client *resty.Client
	gate   *session.Gate

	mu    sync.RWMutex
	token string
}

// Option configures the Client.
type Option func(*Client)

// WithSessionGate injects the gate consulted on checkExpiry calls.
// Defaults to a gate with no leeway.
func WithSessionGate(g *session.Gate) Option {
	return func(c *Client) {
		c.gate = g
	}
}

// New creates a directory client.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	c := &Client{client: cli}
	for _, opt := range opts {
		opt(c)
	}
	if c.gate == nil {
		c.gate = session.NewGate()
	}
	return c
}

// SetToken replaces the bearer token used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// GetContextProcesses fetches the process instances grouped under a named
// business context. The filter map is appended as query parameters.
func (c *Client) GetContextProcesses(ctx context.Context, name string, filters map[string]string, checkExpiry bool) (domain.ContextFlows, error) {
	if err := c.checkSession(checkExpiry); err != nil {
		return nil, err
	}

	var flows domain.ContextFlows
	req := c.authedRequest(ctx).SetResult(&flows)
	if len(filters) > 0 {
		req.SetQueryParams(filters)
	}

	resp, err := req.Get("/api/contexts/" + name + "/processes")
	if err != nil {
		return nil, fmt.Errorf("get context processes: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return flows, nil
}

// StartOrResumeContextProcess starts (or resumes) the named process with the
// given payload data.
func (c *Client) StartOrResumeContextProcess(ctx context.Context, name string, data map[string]string, checkExpiry bool) (*domain.ProcessInstance, error) {
	if err := c.checkSession(checkExpiry); err != nil {
		return nil, err
	}

	var instance domain.ProcessInstance
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		SetResult(&instance).
		Post("/api/processes/" + name)
	if err != nil {
		return nil, fmt.Errorf("start context process: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return &instance, nil
}

// StartOrResumeProcess resumes the process instance with the given id.
func (c *Client) StartOrResumeProcess(ctx context.Context, instanceID string) (*domain.ProcessInstance, error) {
	var instance domain.ProcessInstance
	resp, err := c.authedRequest(ctx).
		SetResult(&instance).
		Post("/api/processes/instances/" + instanceID)
	if err != nil {
		return nil, fmt.Errorf("resume process: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return &instance, nil
}

// SubmitTransition reports a completed step's result to the remote engine.
// Its signature matches ports.SubmitFunc so it can be handed straight to the
// orchestrator.
func (c *Client) SubmitTransition(ctx context.Context, transitionID, processID string, result []byte) (*domain.ProcessInstance, error) {
	var instance domain.ProcessInstance
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(domain.TransitionRequest{
			TransitionID: transitionID,
			ProcessID:    processID,
			Result:       result,
		}).
		SetResult(&instance).
		Post("/api/transitions")
	if err != nil {
		return nil, fmt.Errorf("submit transition: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return &instance, nil
}

func (c *Client) checkSession(checkExpiry bool) error {
	if _, err := c.gate.Check(c.Token(), checkExpiry); err != nil {
		return err
	}
	return nil
}

func (c *Client) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() < 300:
		return nil
	case resp.StatusCode() == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("directory: unexpected status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
}
