package pfr

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"
)

type BrowserConfig struct {
	UserAgent string
	Timeout   time.Duration
	// ExecPath overrides chrome discovery.
	ExecPath string
}

// BrowserFetcher renders pages in headless Chrome for sources that refuse
// plain HTTP clients.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
}

var _ PageFetcher = (*BrowserFetcher)(nil)

func NewBrowserFetcher(cfg BrowserConfig) *BrowserFetcher {
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if path := strings.TrimSpace(cfg.ExecPath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &BrowserFetcher{allocCtx: allocCtx, cancel: cancel, timeout: timeout}
}

func (b *BrowserFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	browserCtx, cancelBrowser := chromedp.NewContext(b.allocCtx)
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, b.timeout)
	defer cancelTimeout()

	// Tie the tab to the caller's cancellation as well.
	stop := context.AfterFunc(ctx, cancelBrowser)
	defer stop()

	var html string
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crerr.Wrap(err, "chromedp run")
	}
	if strings.TrimSpace(html) == "" {
		return nil, crerr.New("empty HTML content returned")
	}
	return []byte(html), nil
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() {
	b.cancel()
}
