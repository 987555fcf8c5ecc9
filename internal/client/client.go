// Package client is the HTTP/JSON transport to the inference backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

// QueryClient posts query requests to the backend and classifies failures.
// It performs a single exchange per call: no retries and no client-side timeout.
type QueryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a QueryClient.
type Option func(*QueryClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *QueryClient) { c.httpClient = hc }
}

// WithLogger sets a logger for request/response debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *QueryClient) { c.logger = l }
}

// New creates a client for the backend at baseURL (e.g. "http://127.0.0.1:8000").
func New(baseURL string, opts ...Option) *QueryClient {
	c := &QueryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base address the client was built with.
func (c *QueryClient) BaseURL() string {
	return c.baseURL
}

// Send posts payload as JSON to endpointPath and returns the response body verbatim.
// A success response whose body is not valid JSON returns a nil payload and no error.
// Any failure is returned as *Error.
func (c *QueryClient) Send(ctx context.Context, endpointPath string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpointPath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.exchange(req, endpointPath)
}

// Do sends a typed query request to its endpoint.
func (c *QueryClient) Do(ctx context.Context, q models.QueryRequest) (json.RawMessage, error) {
	return c.Send(ctx, q.Endpoint(), q)
}

// Predict requests subject labels for req.Text.
func (c *QueryClient) Predict(ctx context.Context, req models.PredictRequest) ([]models.Prediction, error) {
	raw, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.DecodePredictions(raw), nil
}

// Recommend requests titles similar to req.Query.
func (c *QueryClient) Recommend(ctx context.Context, req models.RecommendRequest) ([]models.Recommendation, error) {
	raw, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.DecodeRecommendations(raw), nil
}

// Health fetches the backend health report.
func (c *QueryClient) Health(ctx context.Context) (*models.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+models.HealthPath, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	raw, err := c.exchange(req, models.HealthPath)
	if err != nil {
		return nil, err
	}
	var h models.Health
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("decode health: %w", err)
		}
	}
	return &h, nil
}

func (c *QueryClient) exchange(req *http.Request, path string) (json.RawMessage, error) {
	start := time.Now()
	c.logger.Debug("backend request", zap.String("method", req.Method), zap.String("path", path))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable", zap.String("path", path), zap.Error(err))
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	c.logger.Debug("backend response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(resp.StatusCode, data)}
	}
	if readErr != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("read response: %w", readErr)}
	}
	if !json.Valid(data) {
		c.logger.Warn("backend returned non-JSON success body", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, nil
	}
	return json.RawMessage(data), nil
}
