package aip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aip-labs/aip/internal/retry"
)

// Client defaults.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultBackoffFactor = 0.5
	DefaultMinConfidence = 0.7
	DefaultPageSize      = 20
)

// MaxSearchResults is the hard ceiling on results SearchAll will
// accumulate before failing with a *SafetyLimitError.
const MaxSearchResults = 10000

// retryableStatuses are the HTTP statuses treated as transient.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client talks to an agent registry over HTTP. Requests that fail with a
// transient status (429, 500, 502, 503, 504) or a connection error are
// retried with exponential backoff.
//
// Retries apply uniformly to every method, including POST, PUT, and
// DELETE. The registry is expected to treat registration and update as
// idempotent by agent id; callers that cannot rely on that must accept
// duplicate-effect risk under retry.
//
// The base URL and API key are immutable for the lifetime of a Client;
// construct a new one to change them.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request. An empty
// key leaves requests anonymous.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMaxRetries sets how many times a transient failure is retried
// after the initial attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithBackoffFactor sets the initial backoff delay in seconds. The
// delay doubles on each retry.
func WithBackoffFactor(factor float64) Option {
	return func(c *Client) {
		c.backoff = time.Duration(factor * float64(time.Second))
	}
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the registry at registryURL. A trailing
// slash on the URL is tolerated.
func New(registryURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(registryURL, "/"),
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		backoff:    time.Duration(DefaultBackoffFactor * float64(time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// RegistryURL returns the base URL this client was built with.
func (c *Client) RegistryURL() string {
	return c.baseURL
}

// Close releases idle connections held by the client's transport.
// The client must not be used after Close.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Register creates a new agent record. The profile is validated before
// any request is made.
func (c *Client) Register(ctx context.Context, profile *AgentProfile) (*RegistrationResponse, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/agents", nil, profile)
	if err != nil {
		return nil, err
	}
	var out RegistrationResponse
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches an agent profile by id. A missing agent surfaces as a
// *ClientError with status 404 (see IsNotFound).
func (c *Client) Get(ctx context.Context, agentID string) (*AgentProfile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/agents/"+url.PathEscape(agentID), nil, nil)
	if err != nil {
		return nil, err
	}
	var profile AgentProfile
	if err := resp.decode(&profile); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("registry returned invalid profile %q: %w", agentID, err)
	}
	return &profile, nil
}

// SearchOptions filter a single-page search. A nil options value means
// DefaultSearchOptions. MinConfidence is sent exactly as given,
// including zero; the 0.7 default exists only in DefaultSearchOptions.
type SearchOptions struct {
	Skill         string
	MinConfidence float64
	Limit         int
	Offset        int
}

// DefaultSearchOptions returns the standard search filter: any skill,
// minimum confidence 0.7, first page of 20.
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{MinConfidence: DefaultMinConfidence, Limit: DefaultPageSize}
}

// Search returns one page of agents matching the filter, in server order.
func (c *Client) Search(ctx context.Context, opts *SearchOptions) ([]AgentProfile, error) {
	if opts == nil {
		opts = DefaultSearchOptions()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := url.Values{}
	query.Set("min_confidence", strconv.FormatFloat(opts.MinConfidence, 'f', -1, 64))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(opts.Offset))
	if opts.Skill != "" {
		query.Set("skill", opts.Skill)
	}

	resp, err := c.do(ctx, http.MethodGet, "/agents", query, nil)
	if err != nil {
		return nil, err
	}
	var page SearchResponse
	if err := resp.decode(&page); err != nil {
		return nil, err
	}
	for i := range page.Results {
		if err := page.Results[i].Validate(); err != nil {
			return nil, fmt.Errorf("registry returned invalid profile in search results: %w", err)
		}
	}
	return page.Results, nil
}

// SearchAllOptions filter a paginated fetch-everything search.
type SearchAllOptions struct {
	Skill         string
	MinConfidence float64
	PageSize      int
}

// SearchAll fetches every matching agent by walking pages of PageSize
// until the registry returns an empty page. Results keep arrival order.
// If more than MaxSearchResults accumulate, SearchAll stops issuing
// requests and returns a *SafetyLimitError; this guards against a
// server that never returns an empty page.
func (c *Client) SearchAll(ctx context.Context, opts *SearchAllOptions) ([]AgentProfile, error) {
	if opts == nil {
		opts = &SearchAllOptions{MinConfidence: DefaultMinConfidence}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []AgentProfile
	offset := 0
	for {
		page, err := c.Search(ctx, &SearchOptions{
			Skill:         opts.Skill,
			MinConfidence: opts.MinConfidence,
			Limit:         pageSize,
			Offset:        offset,
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return all, nil
		}

		all = append(all, page...)
		offset += pageSize

		if len(all) > MaxSearchResults {
			return nil, &SafetyLimitError{Accumulated: len(all), Limit: MaxSearchResults}
		}
	}
}

// Update replaces an existing agent profile (full PUT semantics). The
// profile is validated before any request is made.
func (c *Client) Update(ctx context.Context, agentID string, profile *AgentProfile) (*UpdateResponse, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPut, "/agents/"+url.PathEscape(agentID), nil, profile)
	if err != nil {
		return nil, err
	}
	var out UpdateResponse
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an agent record. Both a 204 without a body and any
// other 2xx (with or without a body) count as success.
func (c *Client) Delete(ctx context.Context, agentID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/agents/"+url.PathEscape(agentID), nil, nil)
	return err
}

// ReportMetrics appends a performance report for an agent. This is an
// event, not a profile mutation.
func (c *Client) ReportMetrics(ctx context.Context, agentID string, metrics Metrics) (*MetricsReportResponse, error) {
	if err := metrics.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/agents/"+url.PathEscape(agentID)+"/metrics", nil, metrics)
	if err != nil {
		return nil, err
	}
	var out MetricsReportResponse
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HealthCheck probes registry liveness.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}
	var out Health
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// response is a successful (2xx) exchange awaiting decoding.
type response struct {
	op     string
	status int
	body   []byte
}

// decode unmarshals the response body into v. A 2xx body that fails to
// parse is a *TransportError, never a silent success.
func (r *response) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return &TransportError{Op: r.op, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	return nil
}

// do runs one retried HTTP exchange and returns the successful
// response. Transient failures burn retry budget; terminal failures
// surface immediately as *ClientError or *TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (*response, error) {
	op := method + " " + path

	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body for %s: %w", op, err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var resp *response
	err := retry.Do(ctx, c.maxRetries+1, c.backoff, func() error {
		var body io.Reader
		if bodyBytes != nil {
			body = bytes.NewReader(bodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return retry.Permanent(&TransportError{Op: op, Err: err})
		}
		req.Header.Set("Accept", "application/json")
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			// Connection-level failure: retryable.
			return fmt.Errorf("sending request: %w", err)
		}
		defer res.Body.Close()

		data, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if retryableStatuses[res.StatusCode] {
			return fmt.Errorf("registry returned status %d", res.StatusCode)
		}
		if res.StatusCode >= 200 && res.StatusCode < 300 {
			resp = &response{op: op, status: res.StatusCode, body: data}
			return nil
		}
		return retry.Permanent(decodeErrorBody(op, res.StatusCode, data))
	})
	if err != nil {
		var ce *ClientError
		var te *TransportError
		if errors.As(err, &ce) || errors.As(err, &te) {
			return nil, err
		}
		// Retry budget exhausted on a transient failure, or the
		// context ended mid-retry.
		return nil, &TransportError{Op: op, Err: err}
	}
	return resp, nil
}

// decodeErrorBody maps a terminal non-2xx response to a typed error.
// A well-formed error body becomes a *ClientError carrying the server's
// message, code, and details; an unparsable body is a *TransportError.
func decodeErrorBody(op string, status int, data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("invalid error body (status %d): %w", status, err)}
	}

	if _, ok := raw.(map[string]any); ok {
		var apiErr APIError
		// Already known to be a JSON object; re-decoding into the
		// typed shape cannot fail.
		_ = json.Unmarshal(data, &apiErr)
		if apiErr.Error != "" {
			return &ClientError{
				StatusCode: status,
				Message:    apiErr.Error,
				Code:       apiErr.Code,
				Details:    apiErr.Details,
			}
		}
	}

	// Well-formed JSON that is not the documented error shape: keep
	// the raw text as the message rather than dropping it.
	return &ClientError{StatusCode: status, Message: strings.TrimSpace(string(data))}
}
