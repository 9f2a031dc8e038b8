package pfr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/identity"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/cache"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/resilience"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

const (
	DefaultBaseURL   = "https://www.pro-football-reference.com"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxPageBytes     = 8 << 20
)

var (
	ErrPageNotFound = crerr.New("player page not found")
	errPFRTransient = crerr.New("pro-football-reference transient failure")
)

// PageFetcher returns the HTML of one page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Pages replaces the plain HTTP transport, e.g. with a BrowserFetcher.
	Pages PageFetcher
	// PageTTL keeps fetched pages so the identity and game log reads of
	// one player share a request. Zero disables it.
	PageTTL time.Duration
}

// Client reads player pages from the statistics source. It implements
// usecase.IdentityFetcher and usecase.GameLogFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	pages      PageFetcher
	flight     resilience.Flight[[]byte]
	cache      *cache.Store[[]byte]
}

var (
	_ usecase.IdentityFetcher = (*Client)(nil)
	_ usecase.GameLogFetcher  = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    time.Second,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		pages:      cfg.Pages,
	}
	if cfg.PageTTL > 0 {
		c.cache = cache.NewStore[[]byte](cfg.PageTTL)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) FetchIdentity(ctx context.Context, url string) (identity.Scraped, error) {
	body, err := c.page(ctx, url)
	if err != nil {
		return identity.Scraped{}, err
	}
	scraped, err := ParseIdentity(body, url)
	if err != nil {
		return identity.Scraped{}, crerr.Wrapf(err, "parse identity %s", url)
	}
	return scraped, nil
}

func (c *Client) FetchGameLog(ctx context.Context, url string) (gamelog.RawTable, error) {
	body, err := c.page(ctx, url)
	if err != nil {
		return gamelog.RawTable{}, err
	}
	table, err := ParseGameLog(body)
	if err != nil {
		return gamelog.RawTable{}, crerr.Wrapf(err, "parse game log %s", url)
	}
	return table, nil
}

func (c *Client) page(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, url); ok {
			return body, nil
		}
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "pro-football-reference circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: statistics source is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	body, err, _ := c.flight.Do(url, func() ([]byte, error) {
		raw, reqErr := c.fetch(ctx, url)
		c.breaker.Record(reqErr, isCircuitFailure)
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, url, body)
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if c.pages != nil {
		body, err := c.pages.FetchPage(ctx, url)
		if err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "browser fetch %s", url), errPFRTransient)
		}
		return body, nil
	}
	return c.executeRequest(ctx, url)
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = fmt.Errorf("%w: send request: %v", errPFRTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errPFRTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, crerr.Wrapf(ErrPageNotFound, "status=%d url=%s", resp.StatusCode, url)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errPFRTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, crerr.Newf("status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.backoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("request failed")
	}
	c.logger.WarnContext(ctx, "pro-football-reference request failed", "url", url, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errPFRTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
