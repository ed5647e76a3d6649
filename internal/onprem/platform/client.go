// Package platform is the HTTP client for the management platform REST API.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/retry"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// AuthHeader carries the platform API token.
	AuthHeader = "X-AUTH-YW-API-TOKEN"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

// Compile-time check that Client satisfies domain.API.
var _ domain.API = (*Client)(nil)

// Client talks to one customer's endpoints on the platform.
type Client struct {
	baseURL      string
	customerUUID string
	token        string
	http         *http.Client
	retry        retry.Config
	log          zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry replaces the retry configuration used for reads.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger sets the logger for request and retry events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a client for baseURL (e.g. "https://yw.example.com").
// customerUUID must be a valid UUID.
func New(baseURL, customerUUID, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("platform: base URL is required")
	}
	if _, err := uuid.Parse(customerUUID); err != nil {
		return nil, fmt.Errorf("platform: invalid customer UUID %q: %w", customerUUID, err)
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		customerUUID: customerUUID,
		token:        token,
		http:         &http.Client{Timeout: defaultTimeout},
		retry:        retry.DefaultConfig(),
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "platform").Logger()
	return c, nil
}

// --- Errors ---

// APIError is a non-2xx platform response. It unwraps to the matching
// domain sentinel where one exists.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform: HTTP %d", e.Status)
	}
	return fmt.Sprintf("platform: HTTP %d: %s", e.Status, e.Message)
}

// StatusCode returns the HTTP status. It lets retry classify the error.
func (e *APIError) StatusCode() int { return e.Status }

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	}
	return nil
}

// errorBody is the platform's error envelope.
type errorBody struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
}

func parseError(status int, body []byte) error {
	apiErr := &APIError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Error) > 0 {
		var msg string
		if err := json.Unmarshal(eb.Error, &msg); err == nil {
			apiErr.Message = msg
		} else {
			// Field validation errors come back as an object.
			apiErr.Message = string(eb.Error)
		}
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// --- HTTP helpers ---

func (c *Client) customerPath(format string, args ...any) string {
	return "/api/v1/customers/" + c.customerUUID + fmt.Sprintf(format, args...)
}

// do sends one request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("platform: failed to build request: %w", err)
	}
	req.Header.Set(AuthHeader, c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform: request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("platform: failed to decode response: %w", err)
	}
	return nil
}

// get runs do with retries. Mutations are not retried.
func (c *Client) get(ctx context.Context, path string, out any) error {
	cfg := c.retry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.log.Warn().Err(err).Str("path", path).Int("attempt", attempt).Dur("backoff", delay).Msg("retrying request")
	}
	return retry.Do(ctx, cfg, retry.IsRetryable, func() error {
		return c.do(ctx, http.MethodGet, path, out)
	})
}

func validateProviderUUID(providerUUID string) error {
	if _, err := uuid.Parse(providerUUID); err != nil {
		return fmt.Errorf("invalid provider UUID %q: %w", providerUUID, err)
	}
	return nil
}

// --- domain.API implementation ---

// ListProviders returns every provider configured for the customer.
func (c *Client) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	var out []domain.Provider
	if err := c.get(ctx, c.customerPath("/providers"), &out); err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return nonNil(out), nil
}

// ListRegions returns the regions of every provider, each with its zones.
func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var out []domain.Region
	if err := c.get(ctx, c.customerPath("/regions"), &out); err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	return nonNil(out), nil
}

// ListNodes returns the node instances registered for the provider.
func (c *Client) ListNodes(ctx context.Context, providerUUID string) ([]domain.Node, error) {
	if err := validateProviderUUID(providerUUID); err != nil {
		return nil, err
	}
	var out []domain.Node
	if err := c.get(ctx, c.customerPath("/providers/%s/nodes/list", providerUUID), &out); err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	return nonNil(out), nil
}

// ListInstanceTypes returns the instance types defined for the provider.
func (c *Client) ListInstanceTypes(ctx context.Context, providerUUID string) ([]domain.InstanceType, error) {
	if err := validateProviderUUID(providerUUID); err != nil {
		return nil, err
	}
	var out []domain.InstanceType
	if err := c.get(ctx, c.customerPath("/providers/%s/instance_types", providerUUID), &out); err != nil {
		return nil, fmt.Errorf("failed to list instance types: %w", err)
	}
	return nonNil(out), nil
}

// ListAccessKeys returns the access keys registered for the provider.
func (c *Client) ListAccessKeys(ctx context.Context, providerUUID string) ([]domain.AccessKey, error) {
	if err := validateProviderUUID(providerUUID); err != nil {
		return nil, err
	}
	var out []domain.AccessKey
	if err := c.get(ctx, c.customerPath("/providers/%s/access_keys", providerUUID), &out); err != nil {
		return nil, fmt.Errorf("failed to list access keys: %w", err)
	}
	return nonNil(out), nil
}

// ListUniverses returns the customer's universes.
func (c *Client) ListUniverses(ctx context.Context) ([]domain.Universe, error) {
	var out []domain.Universe
	if err := c.get(ctx, c.customerPath("/universes"), &out); err != nil {
		return nil, fmt.Errorf("failed to list universes: %w", err)
	}
	return nonNil(out), nil
}

// DeleteProvider removes the provider configuration.
func (c *Client) DeleteProvider(ctx context.Context, providerUUID string) error {
	if err := validateProviderUUID(providerUUID); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodDelete, c.customerPath("/providers/%s", providerUUID), nil); err != nil {
		return fmt.Errorf("failed to delete provider %s: %w", providerUUID, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
