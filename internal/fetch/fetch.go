package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Config tunes the page fetcher. Zero values get sane defaults in New.
type Config struct {
	UserAgent   string
	Timeout     time.Duration // per-request
	MaxAttempts int           // includes the initial attempt
	Backoff     time.Duration // base sleep between attempts, grows linearly
	ReqPerSec   float64       // politeness budget per host
	Burst       int
}

// Client fetches listing pages. Politeness and resilience live here so the
// extraction engine stays pure: browser-like headers, bounded retry on
// transient statuses, and a per-host rate limiter shared across sources.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
	cfg     Config
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if cfg.ReqPerSec <= 0 {
		cfg.ReqPerSec = 1.0
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Client{
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: NewHostLimiter(cfg.ReqPerSec, cfg.Burst),
		cfg:     cfg,
	}
}

// Get fetches one page as decoded text, retrying transient failures
// (network errors, 429 and 5xx) up to MaxAttempts with linear backoff.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return "", err
		}

		body, retryable, err := c.tryOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == c.cfg.MaxAttempts {
			break
		}

		log.Debug().Str("url", url).Int("attempt", attempt).Err(err).Msg("retrying fetch")
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * c.cfg.Backoff):
		}
	}
	return "", fmt.Errorf("get %s: %w", url, lastErr)
}

func (c *Client) tryOnce(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	res, err := c.hc.Do(req)
	if err != nil {
		return "", true, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
		return "", true, fmt.Errorf("status %d", res.StatusCode)
	}
	if res.StatusCode >= 400 {
		return "", false, fmt.Errorf("status %d", res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}
	return string(b), false, nil
}
