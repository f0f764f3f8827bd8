package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/civiclens/civiclens/core"
	"golang.org/x/time/rate"
)

// Client fetches raw records from the Chicago civic feeds: the City Clerk
// legislation API and the open-data portal's Socrata resources. Requests
// pass through a token bucket so bulk ingests stay under the portal's
// throttling thresholds.
type Client struct {
	cfg     *Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a feed client from the config.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.timeout()},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithHTTPClient overrides the underlying HTTP client. Used by tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient != nil {
			c.http = httpClient
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// FetchMatters fetches recent legislation matters, newest first.
func (c *Client) FetchMatters(ctx context.Context, limit int) ([]core.RawRecord, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.limitOrDefault(limit)))
	params.Set("order", "introductionDate DESC")
	return c.fetchMatters(ctx, params)
}

// FetchMattersByCategory fetches recent matters in one City Clerk category.
func (c *Client) FetchMattersByCategory(ctx context.Context, category string, limit int) ([]core.RawRecord, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.limitOrDefault(limit)))
	params.Set("matterCategory", category)
	params.Set("order", "introductionDate DESC")
	return c.fetchMatters(ctx, params)
}

// FetchPermits fetches building permit records.
func (c *Client) FetchPermits(ctx context.Context, limit int) ([]core.RawRecord, error) {
	return c.fetchResource(ctx, resourcePermits, limit)
}

// FetchLicenses fetches business license records.
func (c *Client) FetchLicenses(ctx context.Context, limit int) ([]core.RawRecord, error) {
	return c.fetchResource(ctx, resourceLicenses, limit)
}

// FetchMeetings fetches city council meeting records.
func (c *Client) FetchMeetings(ctx context.Context, limit int) ([]core.RawRecord, error) {
	return c.fetchResource(ctx, resourceMeetings, limit)
}

// FetchInspections fetches food inspection records.
func (c *Client) FetchInspections(ctx context.Context, limit int) ([]core.RawRecord, error) {
	return c.fetchResource(ctx, resourceInspections, limit)
}

// FetchViolations fetches building violation records.
func (c *Client) FetchViolations(ctx context.Context, limit int) ([]core.RawRecord, error) {
	return c.fetchResource(ctx, resourceViolations, limit)
}

// mattersEnvelope is the City Clerk API response wrapper.
type mattersEnvelope struct {
	Data []core.RawRecord `json:"data"`
}

func (c *Client) fetchMatters(ctx context.Context, params url.Values) ([]core.RawRecord, error) {
	endpoint := c.cfg.ClerkBaseURL + "/matter?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var envelope mattersEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding matters: %w", ErrUpstreamFetch, err)
	}

	c.logger.Info("fetched legislation matters", "count", len(envelope.Data))
	return envelope.Data, nil
}

// fetchResource fetches one Socrata resource, which returns a bare JSON
// array.
func (c *Client) fetchResource(ctx context.Context, resource string, limit int) ([]core.RawRecord, error) {
	params := url.Values{}
	params.Set("$limit", strconv.Itoa(c.limitOrDefault(limit)))
	endpoint := c.cfg.DataBaseURL + "/resource/" + resource + ".json?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var records []core.RawRecord
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding resource %s: %w", ErrUpstreamFetch, resource, err)
	}

	c.logger.Info("fetched open-data records", "resource", resource, "count", len(records))
	return records, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrUpstreamFetch, resp.StatusCode, endpoint)
	}

	return resp.Body, nil
}

func (c *Client) limitOrDefault(limit int) int {
	if limit <= 0 {
		return c.cfg.DefaultLimit
	}
	return limit
}
