// Package api is the client of the concert REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"concert-pass/monitoring"
	"concert-pass/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker utils.BreakerSettings

	// Transport defaults to an otelhttp-wrapped http.DefaultTransport.
	Transport http.RoundTripper
}

type Client struct {
	// baseURL is the backend root, e.g. http://localhost:5000/api.
	baseURL string

	// hc is the http client.
	hc *http.Client

	breaker *utils.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	settings := cfg.Breaker
	if settings.OnStateChange == nil {
		settings.OnStateChange = func(name string, _, to utils.State) {
			monitoring.SetBreakerState(name, int(to))
		}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		breaker: utils.NewCircuitBreakerWithSettings("backend", settings),
	}
}

// call describes one backend request. route is the path template used as the
// metrics label.
type call struct {
	method string
	path   string
	route  string
	token  string
	body   any
	out    any
}

// do runs c through the circuit breaker. Replies below 500 are the backend
// answering normally and do not count as breaker failures.
func (c *Client) do(ctx context.Context, cl call) error {
	result, err := c.breaker.Execute(ctx, func() (any, error) {
		err := c.roundTrip(ctx, cl)

		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return apiErr, nil
		}
		return nil, err
	})
	if errors.Is(err, utils.ErrOpenState) || errors.Is(err, utils.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, cl.method, cl.route, err)
	}
	if err != nil {
		return err
	}
	if apiErr, ok := result.(*Error); ok && apiErr != nil {
		return apiErr
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("api: %s %s: json.Marshal: %w", cl.method, cl.route, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("api: %s %s: http.NewRequest: %w", cl.method, cl.route, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		monitoring.ObserveBackendRequest(cl.route, 0, time.Since(start))
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, cl.method, cl.route, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveBackendRequest(cl.route, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var reply struct {
			Message string `json:"message"`
		}
		// The message is optional and the body may not be JSON at all.
		_ = json.NewDecoder(resp.Body).Decode(&reply)
		return &Error{StatusCode: resp.StatusCode, Message: reply.Message}
	}

	if cl.out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("api: %s %s: json.Decode: %w", cl.method, cl.route, err)
	}
	return nil
}
