package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// DefaultBaseURL is the origin the backend listens on out of the box
const DefaultBaseURL = "http://localhost:8000"

// Call describes one finished HTTP exchange with the backend
type Call struct {
	RequestID    string
	Method       string
	Path         string
	Status       int // 0 when no response was received
	RequestSize  int
	ResponseSize int
	Duration     time.Duration
	Err          error
	Timestamp    time.Time
}

// Observer is notified after every call, successful or not
type Observer func(Call)

// Client talks to the text-analysis backend. One method call issues exactly
// one HTTP request; nothing is retried and no timeout is imposed beyond the
// caller's context.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	observers []Observer
	newID     func() string
}

// Option configures a Client
type Option func(*Client) error

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithTLS builds the transport from a TLS/mTLS configuration
func WithTLS(cfg types.TLSConfig) Option {
	return func(c *Client) error {
		if cfg.IsZero() {
			return nil
		}
		hc, err := buildHTTPClient(&cfg)
		if err != nil {
			return fmt.Errorf("failed to configure HTTP client: %w", err)
		}
		c.http = hc
		return nil
	}
}

// WithLogger sets the logger used for per-call debug output
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithObserver registers a callback run after each call
func WithObserver(o Observer) Option {
	return func(c *Client) error {
		if o != nil {
			c.observers = append(c.observers, o)
		}
		return nil
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		userAgent: "nlpbrowser",
		logger:    slog.Default(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the normalized backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchSimilar returns the topK texts nearest to prompt
func (c *Client) SearchSimilar(ctx context.Context, prompt string, topK int) ([]types.SimilarItem, error) {
	var resp types.SimilarResponse
	body := types.AnalysisRequest{Prompt: prompt, TopK: topK}
	if err := c.do(ctx, http.MethodPost, types.PathSimilar, body, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Classify runs the category classifier on prompt
func (c *Client) Classify(ctx context.Context, prompt string) (*types.ClassificationResult, error) {
	var resp types.ClassificationResponse
	if err := c.do(ctx, http.MethodPost, types.PathClassify, types.AnalysisRequest{Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return &resp.Classification, nil
}

// Sentiment runs the sentiment model on prompt
func (c *Client) Sentiment(ctx context.Context, prompt string) (*types.SentimentResult, error) {
	var resp types.SentimentResponse
	if err := c.do(ctx, http.MethodPost, types.PathSentiment, types.AnalysisRequest{Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return &resp.Sentiment, nil
}

// FullAnalysis runs similarity search, classification and sentiment in one call
func (c *Client) FullAnalysis(ctx context.Context, prompt string, topK int) (*types.FullAnalysisResult, error) {
	var resp types.FullAnalysisResponse
	body := types.AnalysisRequest{Prompt: prompt, TopK: topK}
	if err := c.do(ctx, http.MethodPost, types.PathFullAnalysis, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// Health queries the backend health endpoint
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var resp types.HealthStatus
	if err := c.do(ctx, http.MethodGet, types.PathHealth, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Info fetches the backend banner with its version and route list
func (c *Client) Info(ctx context.Context) (*types.ServiceInfo, error) {
	var resp types.ServiceInfo
	if err := c.do(ctx, http.MethodGet, types.PathInfo, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path string, body any, out any) (err error) {
	call := Call{
		RequestID: c.newID(),
		Method:    method,
		Path:      path,
		Timestamp: time.Now(),
	}
	defer func() {
		call.Duration = time.Since(call.Timestamp)
		call.Err = err
		c.notify(call)
	}()

	var bodyReader io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return &TransportError{Op: "encode", Path: path, Err: mErr}
		}
		call.RequestSize = len(payload)
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &TransportError{Op: "build", Path: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", call.RequestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "send", Path: path, Err: err}
	}
	defer resp.Body.Close()

	call.Status = resp.StatusCode
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read", Path: path, Err: err}
	}
	call.ResponseSize = len(data)

	if !IsSuccessStatus(resp.StatusCode) {
		reqErr := &RequestError{Status: resp.StatusCode, Path: path}
		var detail types.ErrorDetail
		if json.Unmarshal(data, &detail) == nil {
			reqErr.Detail = detail.Detail
		}
		return reqErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "decode", Path: path, Err: err}
	}
	return nil
}

func (c *Client) notify(call Call) {
	c.logger.Debug("backend call",
		"method", call.Method,
		"path", call.Path,
		"request_id", call.RequestID,
		"status", call.Status,
		"duration", call.Duration,
		"error", call.Err,
	)
	for _, o := range c.observers {
		o(call)
	}
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
