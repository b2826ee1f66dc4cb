// Package backend is the minimal HTTP JSON client the resolver layer uses
// for every collaborator call. It owns the timeout policy and normalizes
// failures into two conditions: unavailable (transport) and rejected
// (non-2xx status). The client is stateless and safe for concurrent reuse
// across requests.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	eventbus "github.com/shopmesh/gateway/internal/eventbus"
	events "github.com/shopmesh/gateway/internal/events"

	"github.com/google/uuid"
)

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
)

// Client calls backend services by name. Base URLs are fixed at
// construction and never mutated afterwards.
type Client struct {
	services     map[string]string
	httpc        *http.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type Option func(*Client)

// WithReadTimeout sets the per-call timeout for GET calls.
func WithReadTimeout(d time.Duration) Option { return func(c *Client) { c.readTimeout = d } }

// WithWriteTimeout sets the per-call timeout for POST calls.
func WithWriteTimeout(d time.Duration) Option { return func(c *Client) { c.writeTimeout = d } }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpc = h } }

// NewClient creates a client over the given service-name → base-URL map.
func NewClient(services map[string]string, opts ...Option) *Client {
	c := &Client{
		services:     make(map[string]string, len(services)),
		httpc:        &http.Client{},
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for name, base := range services {
		c.services[name] = base
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Services returns the configured backend names, sorted.
func (c *Client) Services() []string {
	names := make([]string, 0, len(c.services))
	for name := range c.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get performs a GET against service and decodes the JSON object response.
func (c *Client) Get(ctx context.Context, service, path string, query url.Values) (map[string]any, error) {
	return c.do(ctx, service, http.MethodGet, path, query, nil, c.readTimeout)
}

// Post performs a POST with a JSON body against service and decodes the
// JSON object response. Any 2xx status is a success; the order service
// answers creation with 201.
func (c *Client) Post(ctx context.Context, service, path string, body any) (map[string]any, error) {
	return c.do(ctx, service, http.MethodPost, path, nil, body, c.writeTimeout)
}

func (c *Client) do(ctx context.Context, service, method, path string, query url.Values, body any, timeout time.Duration) (map[string]any, error) {
	base, ok := c.services[service]
	if !ok {
		return nil, &UnavailableError{Service: service, Err: fmt.Errorf("no base URL configured for %q", service)}
	}

	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	callID := uuid.NewString()
	eventbus.Publish(ctx, events.BackendCallStart{
		CallID: callID, Service: service, Method: method, Path: path, Target: base,
	})
	start := time.Now()
	finish := func(status int, err error) {
		eventbus.Publish(ctx, events.BackendCallFinish{
			CallID: callID, Service: service, Method: method, Path: path, Target: base,
			Status: status, Err: err, Duration: time.Since(start),
		})
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		uerr := &UnavailableError{Service: service, Err: err}
		finish(0, uerr)
		return nil, uerr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Service: service, StatusCode: resp.StatusCode}
		finish(resp.StatusCode, serr)
		return nil, serr
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		uerr := &UnavailableError{Service: service, Err: fmt.Errorf("read response: %w", err)}
		finish(resp.StatusCode, uerr)
		return nil, uerr
	}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		uerr := &UnavailableError{Service: service, Err: fmt.Errorf("malformed response body: %w", err)}
		finish(resp.StatusCode, uerr)
		return nil, uerr
	}

	finish(resp.StatusCode, nil)
	return parsed, nil
}
