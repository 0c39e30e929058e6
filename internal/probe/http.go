package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/launchboard/internal/domain/types"
	"github.com/okian/launchboard/pkg/logger"
)

// HTTPClient wraps http.Client with timeout and request accounting.
type HTTPClient struct {
	client   *http.Client
	baseURL  string
	requests atomic.Int64
	failed   atomic.Int64
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request tagged with a fresh request ID.
func (c *HTTPClient) Get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	id := uuid.NewString()
	req.Header.Set("X-Request-ID", id)

	c.requests.Add(1)
	resp, err := c.client.Do(req)
	if err != nil {
		c.failed.Add(1)
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	logger.Get().Debug(ctx, "probe request",
		logger.String("url", target),
		logger.String("requestID", id),
		logger.Int("status", resp.StatusCode))
	return resp, nil
}

// getJSON fetches path and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	resp, err := c.Get(ctx, path, q)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.failed.Add(1)
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		c.failed.Add(1)
		return fmt.Errorf("%w: %s: %d: %s", ErrHTTPStatus, path, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.failed.Add(1)
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) controls(ctx context.Context) (types.ControlSet, error) {
	var cs types.ControlSet
	err := c.getJSON(ctx, "/api/controls", nil, &cs)
	return cs, err
}

func (c *HTTPClient) distribution(ctx context.Context, site string) (types.DistributionView, error) {
	var view types.DistributionView
	err := c.getJSON(ctx, "/api/distribution", url.Values{"site": {site}}, &view)
	return view, err
}

func (c *HTTPClient) correlation(ctx context.Context, tc Case) (types.CorrelationView, error) {
	var view types.CorrelationView
	q := url.Values{
		"site": {tc.Site},
		"min":  {strconv.FormatFloat(tc.Min, 'f', -1, 64)},
		"max":  {strconv.FormatFloat(tc.Max, 'f', -1, 64)},
	}
	err := c.getJSON(ctx, "/api/correlation", q, &view)
	return view, err
}
