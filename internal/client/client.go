// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
	"github.com/tomtom215/folio/internal/validation"
)

const maxResponseBytes = 4 << 20

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Token is sent as a bearer token; admin endpoints require it.
	Token string

	// RequestsPerSecond and Burst pace outgoing calls; zero disables pacing.
	RequestsPerSecond float64
	Burst             int

	// Request bounds checked before sending.
	MinBookID    int
	MaxBookID    int
	MinLimit     int
	MaxLimit     int
	DefaultLimit int

	// Breaker trips after FailureThreshold consecutive server failures and
	// probes again after OpenTimeout.
	BreakerName      string
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// DefaultConfig returns the default client configuration for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
		MinBookID:         1,
		MaxBookID:         10000,
		MinLimit:          5,
		MaxLimit:          20,
		DefaultLimit:      10,
		BreakerName:       "folio-api",
		FailureThreshold:  5,
		OpenTimeout:       30 * time.Second,
	}
}

// Client calls the Folio HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*response]
	config  Config
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

// New creates a Client.
//
//nolint:gocritic // hugeParam: config is read once
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidRequest, cfg.BaseURL)
	}
	if cfg.BreakerName == "" {
		cfg.BreakerName = "folio-api"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.BreakerName).Set(0)
	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        cfg.BreakerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		cb:      cb,
		config:  cfg,
	}, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// BreakerState returns the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.cb.State()
}

// RecommendRequest is a recommendation query. Method accepts the server's
// method names; an empty Method selects content-based, a zero Limit the
// configured default.
type RecommendRequest struct {
	BookID int
	Method string
	Limit  int
}

// Recommend returns ordered book ids for req.
//
//nolint:gocritic // hugeParam: request passed by value
func (c *Client) Recommend(ctx context.Context, req RecommendRequest) ([]int, error) {
	if req.Limit == 0 {
		req.Limit = c.config.DefaultLimit
	}
	if err := c.validate(req); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("book_id", strconv.Itoa(req.BookID))
	if req.Method != "" {
		q.Set("method", req.Method)
	}
	q.Set("limit", strconv.Itoa(req.Limit))

	resp, err := c.do(ctx, http.MethodGet, "/recommend", q, nil)
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusOK:
		var ids []int
		if err := json.Unmarshal(resp.body, &ids); err != nil {
			return nil, fmt.Errorf("decode recommendations: %w", err)
		}
		return ids, nil
	case http.StatusNotFound:
		return nil, ErrNoRecommendations
	default:
		return nil, statusError(resp)
	}
}

func (c *Client) validate(req RecommendRequest) error {
	checks := []struct {
		field string
		value interface{}
		tag   string
	}{
		{"book_id", req.BookID, fmt.Sprintf("min=%d,max=%d", c.config.MinBookID, c.config.MaxBookID)},
		{"method", req.Method, "omitempty,method"},
		{"limit", req.Limit, fmt.Sprintf("min=%d,max=%d", c.config.MinLimit, c.config.MaxLimit)},
	}
	for _, chk := range checks {
		if verr := validation.ValidateVar(chk.field, chk.value, chk.tag); verr != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, verr.Error())
		}
	}
	return nil
}

// Book returns the catalog entry for id.
func (c *Client) Book(ctx context.Context, id int) (*catalog.Book, error) {
	if id < 1 {
		return nil, fmt.Errorf("%w: book id must be positive", ErrInvalidRequest)
	}
	var book catalog.Book
	if err := c.getEnvelope(ctx, "/api/v1/books/"+strconv.Itoa(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// IndexStatus is the active generation status plus the newest persisted
// build manifest, when the server has one.
type IndexStatus struct {
	recommend.Status
	LastBuild *storage.Manifest `json:"last_build,omitempty"`
}

// IndexStatus returns the server's active generation status.
func (c *Client) IndexStatus(ctx context.Context) (*IndexStatus, error) {
	var status IndexStatus
	if err := c.getEnvelope(ctx, "/api/v1/index", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// BookPage is one page of catalog search results.
type BookPage struct {
	Books   []catalog.Book
	Total   int64
	Page    int
	HasMore bool
}

// SearchBooks returns one page of books whose titles contain query. A zero
// page or limit selects the server default.
func (c *Client) SearchBooks(ctx context.Context, query string, page, limit int) (*BookPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	q := url.Values{}
	q.Set("query", query)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	result := &BookPage{}
	env, err := c.getEnvelopeMeta(ctx, "/api/v1/books/search", q, &result.Books)
	if err != nil {
		return nil, err
	}
	if p := env.Meta.Pagination; p != nil {
		result.Total = p.Total
		result.Page = p.Page
		result.HasMore = p.HasMore
	}
	return result, nil
}

// RandomBooks returns up to n distinct books; zero selects the server default.
func (c *Client) RandomBooks(ctx context.Context, n int) ([]catalog.Book, error) {
	q := url.Values{}
	if n > 0 {
		q.Set("count", strconv.Itoa(n))
	}
	var books []catalog.Book
	if err := c.getEnvelope(ctx, "/api/v1/books/random", q, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// IndexHistory returns up to limit build manifests, newest first.
func (c *Client) IndexHistory(ctx context.Context, limit int) ([]*storage.Manifest, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var manifests []*storage.Manifest
	if err := c.getEnvelope(ctx, "/api/v1/index/history", q, &manifests); err != nil {
		return nil, err
	}
	return manifests, nil
}

// RebuildAccepted acknowledges a rebuild request.
type RebuildAccepted struct {
	EventID   string `json:"event_id"`
	RequestID string `json:"request_id,omitempty"`
}

// Rebuild asks the server to build a new index generation.
func (c *Client) Rebuild(ctx context.Context, reason string) (*RebuildAccepted, error) {
	body, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return nil, fmt.Errorf("encode rebuild request: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/index/rebuild", nil, body)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusAccepted {
		return nil, statusError(resp)
	}
	var accepted RebuildAccepted
	if _, err := decodeEnvelope(resp.body, &accepted); err != nil {
		return nil, err
	}
	return &accepted, nil
}

// envelope mirrors the server's APIResponse.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		Pagination *struct {
			Total   int64 `json:"total"`
			Page    int   `json:"page"`
			HasMore bool  `json:"has_more"`
		} `json:"pagination"`
	} `json:"meta"`
}

func (c *Client) getEnvelope(ctx context.Context, path string, q url.Values, out interface{}) error {
	_, err := c.getEnvelopeMeta(ctx, path, q, out)
	return err
}

func (c *Client) getEnvelopeMeta(ctx context.Context, path string, q url.Values, out interface{}) (*envelope, error) {
	resp, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	switch resp.status {
	case http.StatusOK:
		return decodeEnvelope(resp.body, out)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	default:
		return nil, statusError(resp)
	}
}

func decodeEnvelope(body []byte, out interface{}) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, errors.New("server reported failure")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("decode response data: %w", err)
	}
	return &env, nil
}

// statusError converts a non-success response. Both response shapes are
// understood: {"error": "..."} and the envelope's error object.
func statusError(resp *response) error {
	if resp.status == http.StatusServiceUnavailable {
		return ErrNotReady
	}
	se := &StatusError{StatusCode: resp.status}

	var plain struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(resp.body, &plain) == nil {
		var s string
		var obj struct {
			Message string `json:"message"`
		}
		switch {
		case json.Unmarshal(plain.Error, &s) == nil && s != "":
			se.Message = s
		case json.Unmarshal(plain.Error, &obj) == nil && obj.Message != "":
			se.Message = obj.Message
		default:
			se.Message = plain.Message
		}
	}
	return se
}

// errServer marks responses the breaker counts as failures.
var errServer = errors.New("server error")

// do sends one request through the limiter and circuit breaker.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	resp, err := c.cb.Execute(func() (*response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.config.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.Token)
		}
		if id := logging.RequestIDFromContext(ctx); id != "" {
			req.Header.Set("X-Request-ID", id)
		}

		httpResp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		r := &response{status: httpResp.StatusCode, body: data}
		if r.status >= http.StatusInternalServerError && r.status != http.StatusServiceUnavailable {
			return r, errServer
		}
		return r, nil
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(c.config.BreakerName, "success").Inc()
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.config.BreakerName, "rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	case errors.Is(err, errServer) && resp != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(c.config.BreakerName, "failure").Inc()
		return resp, nil
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(c.config.BreakerName, "failure").Inc()
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
}
