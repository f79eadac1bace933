// Package collect acquires documents about cultural enterprise failures from
// online sources and feeds them through scoring into the case store.
package collect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/resilience"
)

// maxBodyBytes caps response bodies; abstracts and API payloads are small.
const maxBodyBytes = 4 << 20

// Client is the shared HTTP client for all sources: per-host rate limiting,
// retry with exponential backoff on transient failures, and a fixed
// User-Agent identifying the research bot.
type Client struct {
	http  *http.Client
	ua    string
	retry resilience.RetryConfig
	rps   rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient builds a Client from collection settings.
func NewClient(cfg config.CollectConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := rate.Limit(cfg.RequestsPerSecond)
	if rps <= 0 {
		rps = 1
	}
	retry := resilience.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxAttempts = cfg.MaxRetries
	}
	retry.OnRetry = resilience.RetryLogger("collect", "get")

	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		ua:       cfg.UserAgent,
		retry:    retry,
		rps:      rps,
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the limiter for the URL's host, creating it on first
// use. Every host gets the same configured rate.
func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(c.rps, 1)
		c.limiters[host] = lim
	}
	return lim
}

// Get fetches the URL and returns the response body. Rate-limited 429 and
// server 5xx responses are retried with backoff; other non-200 statuses fail
// immediately.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "collect: create request")
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if err := c.limiterFor(rawURL).Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "collect: rate limiter wait")
		}
		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			return nil, eris.Wrapf(err, "collect: get %s", rawURL)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(
				eris.Errorf("collect: http %d from %s", resp.StatusCode, rawURL),
				resp.StatusCode,
			)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("collect: unexpected status %d from %s", resp.StatusCode, rawURL)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, eris.Wrapf(err, "collect: read body from %s", rawURL)
		}
		return body, nil
	})
}

// GetJSON fetches the URL and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "collect: decode json from %s", rawURL)
	}
	return nil
}
