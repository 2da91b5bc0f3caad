// Package navdata fetches and caches mutual fund NAV history
package navdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/logging"
	"github.com/investa/finserve/pkg/dateutil"
)

const (
	DefaultBaseURL   = "https://api.mfapi.in/mf"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second
)

var (
	// ErrNotFound is returned when the feed does not know the scheme code
	ErrNotFound = errors.New("scheme not found")
	// ErrNoData is returned when the feed answers with no usable observations
	ErrNoData = errors.New("no NAV data")
)

// Source provides NAV history keyed by scheme code
type Source interface {
	FetchHistory(ctx context.Context, code int) (*domain.NavHistory, error)
}

// Client reads NAV history from the mfapi.in feed
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new NAV feed client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-200 answer from the feed
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NAV API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

type schemeResponse struct {
	Meta struct {
		FundHouse      string `json:"fund_house"`
		SchemeType     string `json:"scheme_type"`
		SchemeCategory string `json:"scheme_category"`
		SchemeCode     int    `json:"scheme_code"`
		SchemeName     string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

// FetchHistory retrieves the full NAV history of a scheme, latest first
func (c *Client) FetchHistory(ctx context.Context, code int) (*domain.NavHistory, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	path := fmt.Sprintf("/%d", code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Int("code", code).Msg("NAV API request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("scheme %d: %w", code, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	var payload schemeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	history := &domain.NavHistory{
		Meta: domain.SchemeMeta{
			SchemeCode:     payload.Meta.SchemeCode,
			SchemeName:     payload.Meta.SchemeName,
			FundHouse:      payload.Meta.FundHouse,
			SchemeType:     payload.Meta.SchemeType,
			SchemeCategory: payload.Meta.SchemeCategory,
		},
		Observations: make([]domain.NavObservation, 0, len(payload.Data)),
	}
	if history.Meta.SchemeCode == 0 {
		history.Meta.SchemeCode = code
	}

	skipped := 0
	for _, row := range payload.Data {
		obs, err := parseObservation(row.Date, row.NAV)
		if err != nil {
			skipped++
			continue
		}
		history.Observations = append(history.Observations, obs)
	}

	c.logger.Debug().
		Int("code", code).
		Int("observations", len(history.Observations)).
		Int("skipped", skipped).
		Dur("elapsed", time.Since(start)).
		Msg("NAV API response")

	if len(history.Observations) == 0 {
		return nil, fmt.Errorf("scheme %d: %w", code, ErrNoData)
	}
	return history, nil
}

// parseObservation converts a feed row. NAVs arrive as decimal strings.
func parseObservation(date, nav string) (domain.NavObservation, error) {
	t, err := dateutil.ParseDate(date)
	if err != nil {
		return domain.NavObservation{}, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(nav))
	if err != nil {
		return domain.NavObservation{}, fmt.Errorf("invalid NAV %q: %w", nav, err)
	}
	if d.IsNegative() {
		return domain.NavObservation{}, fmt.Errorf("negative NAV %q", nav)
	}
	return domain.NavObservation{Date: t, NAV: d.InexactFloat64()}, nil
}

// formatNAV renders a NAV with the feed's four decimal places
func formatNAV(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}
