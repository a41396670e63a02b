package evvclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	cacheTTL       = 5 * time.Minute
	loginPath      = "/auth/login"
)

// ErrSessionExpired is returned when the server rejects the session token.
// The local session has already been cleared by the time callers see it.
var ErrSessionExpired = errors.New("session expired")

// APIError carries the single human-readable message surfaced to callers.
// Transport detail stays in the logs.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// transientError marks a failure worth retrying: timeout or connectivity
// loss, never an HTTP-level rejection.
type transientError struct {
	cause error
}

func (e *transientError) Error() string {
	return e.cause.Error()
}

func (e *transientError) Unwrap() error {
	return e.cause
}

// Client is the reliability layer for the EVV API: bearer-token injection,
// offline queuing, retry with backoff, session-expiry handling and an
// advisory read cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	queue      *offlineQueue
	cache      *readCache
	clock      clock.Clock
	logger     *zap.Logger
	backoff    func(attempt int) time.Duration

	mu     sync.Mutex
	online bool

	onSessionExpired func()
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithOnSessionExpired registers the callback fired when a non-login call
// comes back 401.
func WithOnSessionExpired(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(c *Client) { c.backoff = fn }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    NewSession(),
		queue:      newOfflineQueue(),
		clock:      clock.New(),
		logger:     zap.NewNop(),
		online:     true,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = newReadCache(cacheTTL, c.clock)
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Logout clears the local session and cached reads.
func (c *Client) Logout() {
	c.session.Clear()
	c.cache.Clear()
}

func (c *Client) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// SetOnline flips connectivity state. Transitioning to online drains the
// offline queue in priority order, dispatching each request exactly once.
func (c *Client) SetOnline(online bool) {
	c.mu.Lock()
	was := c.online
	c.online = online
	c.mu.Unlock()

	if !online || was {
		return
	}

	for _, req := range c.queue.Drain() {
		payload, err := c.dispatch(context.Background(), req.method, req.path, req.body)
		req.done <- queuedResult{payload: payload, err: err}
	}
}

// QueuedRequests reports how many requests are waiting for connectivity.
func (c *Client) QueuedRequests() int {
	return c.queue.Len()
}

func priorityFor(path string) Priority {
	if strings.HasPrefix(path, "/visits") {
		return PriorityHigh
	}
	return PriorityMedium
}

// call routes a request through the offline queue or the retry loop and
// returns the raw success payload.
func (c *Client) call(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if !c.Online() {
		req := &queuedRequest{
			method:     method,
			path:       path,
			body:       body,
			priority:   priorityFor(path),
			enqueuedAt: c.clock.Now(),
			done:       make(chan queuedResult, 1),
		}
		c.queue.Enqueue(req)
		c.logger.Info("request queued while offline",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("priority", int(req.priority)),
		)

		select {
		case res := <-req.done:
			return res.payload, res.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return c.dispatchWithRetry(ctx, method, path, body)
}

func (c *Client) dispatchWithRetry(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt - 1)
			c.logger.Warn("retrying request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			timer := c.clock.Timer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			}
		}

		payload, err := c.dispatch(ctx, method, path, body)
		if err == nil {
			return payload, nil
		}

		var transient *transientError
		if !errors.As(err, &transient) {
			return nil, err
		}
		lastErr = err
	}

	c.logger.Error("request failed after retries",
		zap.String("method", method),
		zap.String("path", path),
		zap.Error(lastErr),
	)
	return nil, &APIError{Message: "Network error, please try again"}
}

// dispatch performs exactly one HTTP round trip.
func (c *Client) dispatch(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Message: "Invalid request"}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &transientError{cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if path == loginPath {
			return nil, &APIError{Message: errorMessage(payload, "Invalid credentials")}
		}

		c.logger.Info("session expired, clearing local session", zap.String("path", path))
		c.session.Clear()
		c.cache.Clear()
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return nil, ErrSessionExpired
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &APIError{Message: errorMessage(payload, "Request failed")}
	}

	return payload, nil
}

// errorMessage pulls the message out of the error envelope, falling back
// when the body is not parseable.
func errorMessage(payload []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Message == "" {
		return fallback
	}
	return envelope.Message
}

func decodeData(payload []byte, out interface{}) error {
	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return &APIError{Message: "Unexpected server response"}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &APIError{Message: "Unexpected server response"}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}, cached bool) error {
	key := "GET " + path

	if cached {
		if payload, ok := c.cache.Get(key); ok {
			c.logger.Debug("cache hit", zap.String("path", path))
			return decodeData(payload, out)
		}
	}

	payload, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if cached {
		c.cache.Set(key, payload)
	}
	return decodeData(payload, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return &APIError{Message: "Invalid request"}
	}

	payload, err := c.call(ctx, http.MethodPost, path, raw)
	if err != nil {
		return err
	}
	return decodeData(payload, out)
}
