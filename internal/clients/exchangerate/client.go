// Package exchangerate provides a client for an exchangerate-api style
// currency-rate provider.
package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

const (
	DefaultBaseURL   = "https://api.exchangerate-api.com/v4/latest"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the RateProvider interface against the provider's
// /v4/latest/{base} endpoint, which returns a map of rates per base currency.
// The free tier serves latest rates only; the requested date is accepted per
// the RateProvider contract and logged, but does not select a historical
// snapshot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new exchange-rate client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ratesResponse is the provider's payload for /v4/latest/{base}.
type ratesResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// GetRate returns the rate converting one unit of from into to. Every
// failure mode the caller can hit through this path (HTTP error, bad
// payload, unknown currency, timeout) surfaces as RATE_UNAVAILABLE so
// callers treat it as a transient condition.
func (c *Client) GetRate(ctx context.Context, from, to models.CurrencyCode, on time.Time) (decimal.Decimal, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return decimal.Zero, models.NewDependencyError(models.CodeRateUnavailable, fmt.Sprintf("rate limiter wait cancelled: %v", err))
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	c.logger.Debug().
		Str("from", string(from)).
		Str("to", string(to)).
		Str("date", on.Format(models.DateFormat)).
		Msg("Fetching exchange rate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("from", string(from)).Msg("Rate provider request failed")
		return decimal.Zero, models.NewDependencyError(models.CodeRateUnavailable,
			fmt.Sprintf("rate provider unreachable for %s: %v", from, unwrapURLError(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("Rate provider returned error status")
		return decimal.Zero, models.NewDependencyError(models.CodeRateUnavailable,
			fmt.Sprintf("rate provider returned status %d for %s", resp.StatusCode, from))
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, models.NewDependencyError(models.CodeRateUnavailable,
			fmt.Sprintf("rate provider returned malformed payload for %s: %v", from, err))
	}

	r, ok := payload.Rates[string(to)]
	if !ok || !r.IsPositive() {
		return decimal.Zero, models.NewDependencyError(models.CodeRateUnavailable,
			fmt.Sprintf("no %s rate available for base %s", to, from))
	}

	return r, nil
}

// unwrapURLError strips the *url.Error wrapper so logged messages don't
// repeat the method and URL already carried by surrounding context.
func unwrapURLError(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}

// Compile-time check
var _ interfaces.RateProvider = (*Client)(nil)
