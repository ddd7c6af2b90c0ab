package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/pkg/config"
	"github.com/suteetoe/productdesk/pkg/logger"
	"github.com/suteetoe/productdesk/pkg/metrics"
)

// Client talks to the inventory REST API
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Placeholder string

	log     *zap.Logger
	metrics *metrics.ClientMetrics
	timeout time.Duration

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the overall per-request timeout; zero leaves only the transport defaults
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request logging
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics enables request metrics
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithPlaceholder sets the image used for products that have none
func WithPlaceholder(url string) Option {
	return func(c *Client) { c.Placeholder = url }
}

// New creates a new API client instance
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Placeholder: config.DefaultPlaceholderImage,
		log:         zap.NewNop(),
		timeout:     10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.HTTPClient = &http.Client{Timeout: c.timeout}
	return c
}

// NewFromConfig builds a client from the API section of the configuration
func NewFromConfig(cfg *config.APIConfig, opts ...Option) *Client {
	base := []Option{WithTimeout(cfg.Timeout), WithPlaceholder(cfg.PlaceholderImage)}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// SetToken sets the bearer token sent with product requests; empty clears it
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends one JSON request and decodes a 2xx response into out when out is non-nil
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := c.log
	if l, ok := logger.Lookup(ctx); ok {
		base = l
	}
	log := base.With(
		zap.String("request_id", requestID),
		zap.String("operation", operation),
		zap.String("method", method),
		zap.String("path", path),
	)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(operation, 0, start)
		log.Error("API request failed", zap.Error(err))
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveRequest(operation, resp.StatusCode, start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read API response", zap.Error(err))
		return fmt.Errorf("read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		log.Warn("API returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.Duration("latency", time.Since(start)))
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	log.Debug("API request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		log.Warn("Failed to decode API response",
			zap.String("content_type", resp.Header.Get("Content-Type")),
			zap.Error(err))
		return fmt.Errorf("decode %s response: %w", operation, &DecodeError{Status: resp.StatusCode, Err: err})
	}
	return nil
}
