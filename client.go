package pinterest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/giantswarm/go-pinterest/instrumentation"
	"github.com/giantswarm/go-pinterest/internal/util"
)

// Client-side rate limit defaults. Pinterest allows 1000 calls per hour and token.
const (
	DefaultRequestsPerHour = 1000
	DefaultBurst           = 10
)

// maxResponseSize bounds how much of an API response body is read.
const maxResponseSize = 10 << 20

// Client holds an access token and the HTTP transport used to call the
// Pinterest API. Each Client owns its transport; nothing is shared between
// clients.
type Client struct {
	token   *oauth2.Token
	doer    HTTPDoer
	baseURL string
	limiter *rate.Limiter
	logger  *slog.Logger
	inst    *instrumentation.Instrumentation
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the client's own transport.
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// WithBaseURL overrides APIBase, e.g. to point at a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = util.EnsureTrailingSlash(baseURL)
	}
}

// WithRateLimit sets the client-side request pacing.
// A non-positive requestsPerSecond disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInstrumentation enables traces and metrics for API calls.
func WithInstrumentation(inst *instrumentation.Instrumentation) ClientOption {
	return func(c *Client) {
		c.inst = inst
	}
}

// NewClient creates a Client without token, with a freshly created transport.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		doer: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   DefaultRequestTimeout,
		},
		baseURL: APIBase,
		limiter: rate.NewLimiter(rate.Every(time.Hour/DefaultRequestsPerHour), DefaultBurst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientWithToken is NewClient followed by storing a copy of token.
func NewClientWithToken(token *oauth2.Token, opts ...ClientOption) *Client {
	c := NewClient(opts...)
	if token != nil {
		tok := *token
		c.token = &tok
	}
	return c
}

// Token returns a copy of the stored token, or nil if there is none.
func (c *Client) Token() *oauth2.Token {
	if c.token == nil {
		return nil
	}
	tok := *c.token
	return &tok
}

// HasToken reports whether the client holds an access token.
func (c *Client) HasToken() bool {
	return c.token != nil
}

// BaseURL returns the API base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections held by the client's transport.
func (c *Client) Close() {
	if closer, ok := c.doer.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// Do calls the Pinterest API at path (relative to the base URL) with the
// client's access token.
//
// params are sent in the query string for GET and DELETE and as a form body
// otherwise. On success the "data" member of the response envelope is decoded
// into out, if out is non-nil. Non-2xx responses are returned as *APIError.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, out any) error {
	if c.token == nil {
		return ErrNoToken
	}

	endpoint := strings.TrimLeft(path, "/")
	req, err := c.newRequest(ctx, method, endpoint, params)
	if err != nil {
		return err
	}

	var span trace.Span
	if c.inst != nil {
		ctx, span = c.inst.Tracer("api").Start(ctx, "pinterest.Do")
		defer span.End()
		req = req.WithContext(ctx)
	}

	if err := c.wait(ctx, endpoint); err != nil {
		instrumentation.RecordError(span, err)
		return err
	}

	c.token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.doer.Do(req)
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		c.recordRequest(ctx, method, endpoint, 0, durationMs)
		instrumentation.RecordError(span, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.recordRequest(ctx, method, endpoint, resp.StatusCode, durationMs)
	instrumentation.AddHTTPAttributes(span, method, endpoint, resp.StatusCode)
	c.logger.Debug("Pinterest API request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", durationMs)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		instrumentation.RecordError(span, err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		}
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.Type = errBody.Type
		}
		instrumentation.RecordError(span, apiErr)
		return apiErr
	}

	if out != nil && len(body) > 0 {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			instrumentation.RecordError(span, err)
			return fmt.Errorf("failed to decode response: %w", err)
		}
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				instrumentation.RecordError(span, err)
				return fmt.Errorf("failed to decode response data: %w", err)
			}
		}
	}

	instrumentation.SetSpanSuccess(span)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid api path %q: %w", endpoint, err)
	}

	var body io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		if len(params) > 0 {
			q := u.Query()
			for k, vs := range params {
				for _, v := range vs {
					q.Add(k, v)
				}
			}
			u.RawQuery = q.Encode()
		}
	default:
		if len(params) > 0 {
			body = strings.NewReader(params.Encode())
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

// wait blocks until the rate limiter admits a request or ctx is done.
func (c *Client) wait(ctx context.Context, endpoint string) error {
	r := c.limiter.Reserve()
	if !r.OK() {
		return errors.New("rate limiter burst is zero")
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	if c.inst != nil {
		c.inst.Metrics().RecordRateLimitWait(ctx, endpoint)
	}
	c.logger.Debug("Waiting for rate limiter", "endpoint", endpoint, "delay", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

func (c *Client) recordRequest(ctx context.Context, method, endpoint string, status int, durationMs float64) {
	if c.inst != nil {
		c.inst.Metrics().RecordAPIRequest(ctx, method, endpoint, status, durationMs)
	}
}
