package network

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"corona-observer/src/helpers"
	"corona-observer/src/interfaces"
	"corona-observer/src/logger"
	"corona-observer/src/models"
)

// HTTPNetworkManager performs GETs with retries and proxy rotation.
type HTTPNetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Logger       *logger.Logger

	mu     sync.Mutex
	client *http.Client
}

// -----------------------------------------------------------------------------

func NewHTTPNetworkManager(cfg *models.MConfig, log *logger.Logger) *HTTPNetworkManager {
	nm := &HTTPNetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(cfg.Network.Proxies, cfg.Network.UserAgent),
		Logger:       log,
	}
	nm.client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *HTTPNetworkManager) createClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}
}

// Client returns the client currently in use.
func (nm *HTTPNetworkManager) Client() *http.Client {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	return nm.client
}

// SetTransport swaps the round tripper, e.g. for a mock in tests.
func (nm *HTTPNetworkManager) SetTransport(rt http.RoundTripper) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.client.Transport = rt
}

// -----------------------------------------------------------------------------

func (nm *HTTPNetworkManager) rotateProxy() {
	if !nm.ProxyManager.HasProxies() {
		return
	}

	nm.ProxyManager.RotateProxy()
	client := nm.createClient()

	nm.mu.Lock()
	nm.client = client
	nm.mu.Unlock()
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and proxy rotation. Transport
// errors, 429 and 5xx are retried; any other non-200 status fails at once.
func (nm *HTTPNetworkManager) Get(ctx context.Context, urlStr string) ([]byte, error) {
	baseDelay := time.Duration(nm.Config.Network.RetryBaseDelayMs) * time.Millisecond
	attempt := 0

	return helpers.RetryWithBackoff(ctx, nm.Logger, "GET "+urlStr, nm.Config.Network.MaxRetries, baseDelay, func() ([]byte, error) {
		if attempt > 0 {
			nm.rotateProxy()
		}
		attempt++
		return nm.doGet(ctx, urlStr)
	})
}

func (nm *HTTPNetworkManager) doGet(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &helpers.Permanent{Err: helpers.NewNetworkError(0, err, "invalid request for %s", urlStr)}
	}
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())

	resp, err := nm.Client().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &helpers.Permanent{Err: ctx.Err()}
		}
		return nil, helpers.NewNetworkError(0, err, "GET %s failed", urlStr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)

		netErr := helpers.NewNetworkError(resp.StatusCode, nil, "GET %s: bad status %d", urlStr, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, netErr
		}
		return nil, &helpers.Permanent{Err: netErr}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, helpers.NewNetworkError(resp.StatusCode, err, "reading body of %s", urlStr)
	}

	nm.Logger.Debug("GET %s: %d bytes", urlStr, len(body))
	return body, nil
}
