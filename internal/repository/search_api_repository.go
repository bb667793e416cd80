package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wazai-maps/internal/models"
	"github.com/noah-isme/wazai-maps/pkg/config"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/httpclient"
)

const (
	endpointSearch    = "search"
	endpointProviders = "providers"

	maxErrorBody = 4096
)

// UpstreamObserver receives the outcome of every upstream call.
type UpstreamObserver func(endpoint string, status int, duration time.Duration, err error)

// SearchAPIRepository talks to the event search API.
type SearchAPIRepository struct {
	baseURL    string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
	maxBackoff time.Duration
	userAgent  string
	logger     *zap.Logger
	observe    UpstreamObserver
}

// SearchAPIOption customises the repository.
type SearchAPIOption func(*SearchAPIRepository)

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) SearchAPIOption {
	return func(r *SearchAPIRepository) {
		if hc != nil {
			r.httpClient = hc
		}
	}
}

// WithBaseURL overrides the configured base URL (useful for tests).
func WithBaseURL(base string) SearchAPIOption {
	return func(r *SearchAPIRepository) {
		if base != "" {
			r.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithSearchLogger sets the logger.
func WithSearchLogger(logger *zap.Logger) SearchAPIOption {
	return func(r *SearchAPIRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithUpstreamObserver registers a callback for call metrics.
func WithUpstreamObserver(fn UpstreamObserver) SearchAPIOption {
	return func(r *SearchAPIRepository) {
		r.observe = fn
	}
}

// NewSearchAPIRepository builds the client from configuration.
func NewSearchAPIRepository(cfg config.SearchAPIConfig, opts ...SearchAPIOption) *SearchAPIRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.Retries
	if attempts <= 0 {
		attempts = 1
	}
	r := &SearchAPIRepository{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpclient.New(timeout),
		attempts:   attempts,
		backoff:    cfg.Backoff,
		maxBackoff: cfg.MaxBackoff,
		userAgent:  cfg.UserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search runs a query. ALL and empty values are left out of the query string.
func (r *SearchAPIRepository) Search(ctx context.Context, params models.SearchParams) ([]models.Event, error) {
	params = params.Normalize()
	query := url.Values{}
	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}
	if params.Country != models.FilterAll {
		query.Set("country", params.Country)
	}
	if params.Provider != models.FilterAll {
		query.Set("provider", params.Provider)
	}

	var events []models.Event
	if err := r.getJSON(ctx, endpointSearch, "/search", query, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

type providersPayload struct {
	Providers []string `json:"providers"`
}

// Providers lists the provider names the search API knows about.
func (r *SearchAPIRepository) Providers(ctx context.Context) ([]string, error) {
	var payload providersPayload
	if err := r.getJSON(ctx, endpointProviders, "/search/providers", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(payload.Providers))
	for _, p := range payload.Providers {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *SearchAPIRepository) getJSON(ctx context.Context, endpoint, path string, query url.Values, dest interface{}) error {
	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	err := httpclient.Retry(ctx, r.attempts, r.backoff, r.maxBackoff, func() error {
		return r.do(ctx, endpoint, target, dest)
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.logger.Warn("search api request failed",
		zap.String("endpoint", endpoint),
		zap.String("url", target),
		zap.Error(err),
	)
	return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
}

func (r *SearchAPIRepository) do(ctx context.Context, endpoint, target string, dest interface{}) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		if r.observe != nil {
			r.observe(endpoint, status, time.Since(start), err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return httpclient.Permanent(fmt.Errorf("search api: create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return httpclient.Permanent(ctx.Err())
		}
		return fmt.Errorf("search api: request failed: %w", err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := fmt.Errorf("search api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return statusErr
		}
		return httpclient.Permanent(statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return httpclient.Permanent(fmt.Errorf("search api: decode response: %w", err))
	}
	return nil
}
