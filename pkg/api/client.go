// Package api is the console's client for the task service. Every call
// decodes the response against the service contract, maps it into the
// domain model and reports failures as *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/taskdeck/pkg/adapter"
	"github.com/harrisonrobin/taskdeck/pkg/auth"
	"github.com/harrisonrobin/taskdeck/pkg/logging"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// maxBody caps how much of a response is read.
const maxBody = 32 << 20

var errServer = errors.New("server error")

// Client talks to the task service. It is safe for concurrent use. There
// are no retries: a failed call is reported once.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
	breaker *gobreaker.CircuitBreaker
	adapt   []adapter.Option
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on a copy of the current client, so
// a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithTokenSource attaches "Authorization: Bearer" from ts to each request.
// auth.ErrNoSession from ts sends the request without the header.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAdapterOptions is passed to every adapter call, e.g. a Directory.
func WithAdapterOptions(opts ...adapter.Option) Option {
	return func(c *Client) { c.adapt = append(c.adapt, opts...) }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "task-service",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return c
}

type response struct {
	status int
	body   []byte
}

// request is one call: op names it in fallback error messages.
type request struct {
	op          string
	method      string
	path        string
	body        []byte
	contentType string
}

func get(op, path string) request {
	return request{op: op, method: http.MethodGet, path: path}
}

func jsonRequest(op, method, path string, v any) (request, error) {
	req := request{op: op, method: method, path: path}
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return req, fmt.Errorf("%s: encode body: %w", op, err)
		}
		req.body = b
		req.contentType = "application/json"
	}
	return req, nil
}

// send performs req through the breaker. Transport failures and 5xx
// responses count against the breaker; 4xx responses do not.
func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	var resp response
	_, err := c.breaker.Execute(func() (interface{}, error) {
		r, err := c.roundTrip(ctx, req)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.status >= 500 {
			return nil, errServer
		}
		return nil, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logging.Logger.Warnf("Event ID: API_BREAKER_OPEN, Description: %s %s rejected: %v", req.method, req.path, err)
		return nil, &Error{Message: "service unavailable", Err: err}
	case err != nil && !errors.Is(err, errServer):
		logging.Logger.Errorf("Event ID: API_REQUEST_FAILED, Description: %s %s: %v", req.method, req.path, err)
		return nil, &Error{Message: "request failed", Err: err}
	}

	if resp.status < 200 || resp.status > 299 {
		e := &Error{Status: resp.status, Message: errorMessage(resp.body, req.op+" failed")}
		logging.Logger.Warnf("Event ID: API_ERROR_RESPONSE, Description: %s %s: %d %s", req.method, req.path, e.Status, e.Message)
		return nil, e
	}
	return resp.body, nil
}

func (c *Client) roundTrip(ctx context.Context, req request) (response, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return response{}, err
	}
	if req.contentType != "" {
		hr.Header.Set("Content-Type", req.contentType)
	}
	hr.Header.Set("Accept", "application/json")
	if err := c.authorize(hr); err != nil {
		return response{}, err
	}

	res, err := c.http.Do(hr)
	if err != nil {
		return response{}, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return response{}, fmt.Errorf("read response: %w", err)
	}
	return response{status: res.StatusCode, body: b}, nil
}

func (c *Client) authorize(r *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	tok, err := c.tokens.Token()
	if errors.Is(err, auth.ErrNoSession) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	tok.SetAuthHeader(r)
	return nil
}

// call sends req and hands a successful body to decode.
func call[T any](ctx context.Context, c *Client, req request, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	b, err := c.send(ctx, req)
	if err != nil {
		return zero, err
	}
	out, err := decode(bytes.NewReader(b))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", req.op, err)
	}
	return out, nil
}

// serviceID checks that a domain id is one of the service's integer ids.
func serviceID(entity, id string) (string, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "", fmt.Errorf("%s id %q is not a service id", entity, id)
	}
	return id, nil
}
