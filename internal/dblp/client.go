package dblp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// SPARQLEndpoint is the public dblp SPARQL endpoint.
	SPARQLEndpoint = "https://sparql.dblp.org/sparql"

	// SearchEndpoint is the dblp author search API.
	SearchEndpoint = "https://dblp.org/search/author/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultRateLimit keeps us at one request per second against dblp.
	DefaultRateLimit = 1.0

	// DefaultUserAgent identifies the client to dblp.
	DefaultUserAgent = "dblp2wd/dev (+https://github.com/matsen/dblp2wd)"

	// DefaultSearchLimit is the number of author hits requested by default.
	DefaultSearchLimit = 30

	sparqlResultsMIME = "application/sparql-results+json"

	// maxErrorBody bounds how much of an error body ends up in messages.
	maxErrorBody = 512
)

// Client is a rate-limited HTTP client for the dblp SPARQL endpoint and
// author search API. Each call is a single attempt; retrying is the caller's
// business.
type Client struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	sparqlEndpoint string
	searchEndpoint string
	userAgent      string
	logger         *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSPARQLEndpoint sets the SPARQL endpoint URL (for testing or mirrors).
func WithSPARQLEndpoint(u string) ClientOption {
	return func(c *Client) {
		c.sparqlEndpoint = u
	}
}

// WithSearchEndpoint sets the author search API URL.
func WithSearchEndpoint(u string) ClientOption {
	return func(c *Client) {
		c.searchEndpoint = u
	}
}

// WithRateLimit sets requests per second. Zero or negative disables limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new dblp client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		limiter:        rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		sparqlEndpoint: SPARQLEndpoint,
		searchEndpoint: SearchEndpoint,
		userAgent:      DefaultUserAgent,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select runs a SELECT query and returns the decoded result set.
func (c *Client) Select(ctx context.Context, query string) (*Results, error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sparqlEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", sparqlResultsMIME)

	body, err := c.do(ctx, ServiceSPARQL, req)
	if err != nil {
		return nil, err
	}

	var results Results
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &RemoteQueryError{
			Service: ServiceSPARQL,
			Message: fmt.Sprintf("decoding result set: %v", err),
			Err:     ErrInvalidResponse,
		}
	}
	c.logger.Debug("sparql select", "vars", results.Head.Vars, "rows", len(results.Results.Bindings))
	return &results, nil
}

// SearchAuthors searches dblp persons by free-text name. No hits yields an
// empty slice and no error. A limit of zero or less uses the service default.
func (c *Client) SearchAuthors(ctx context.Context, name string, limit int) ([]AuthorHit, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "json")
	if limit > 0 {
		params.Set("h", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, ServiceSearch, req)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RemoteQueryError{
			Service: ServiceSearch,
			Message: fmt.Sprintf("decoding search response: %v", err),
			Err:     ErrInvalidResponse,
		}
	}

	hits := make([]AuthorHit, 0, len(resp.Result.Hits.Hit))
	for _, h := range resp.Result.Hits.Hit {
		hits = append(hits, AuthorHit{Name: h.Info.Author, URL: h.Info.URL})
	}
	c.logger.Debug("author search", "query", name, "hits", len(hits))
	return hits, nil
}

// do waits on the limiter, sends req once, and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, service string, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteQueryError{
			Service: service,
			Message: err.Error(),
			Err:     fmt.Errorf("%w: %w", ErrNetwork, err),
		}
	}
	defer resp.Body.Close()

	c.logger.Debug("dblp request",
		"service", service,
		"method", req.Method,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	if err := checkHTTPErrors(service, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteQueryError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("reading body: %v", err),
			Err:        fmt.Errorf("%w: %w", ErrNetwork, err),
		}
	}
	return body, nil
}

// checkHTTPErrors returns a RemoteQueryError for any non-2xx response.
func checkHTTPErrors(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	sentinel := ErrHTTPStatus
	if resp.StatusCode == http.StatusTooManyRequests {
		sentinel = ErrRateLimited
	}
	msg := formatErrorBody(resp.Body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &RemoteQueryError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Message:    msg,
		Err:        sentinel,
	}
}

// formatErrorBody reads a bounded, trimmed prefix of an error response body.
func formatErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
