package sns

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/ignite/ses-ingest/internal/pkg/httpretry"
	"github.com/ignite/ses-ingest/internal/pkg/logger"
)

// maxCertBytes bounds the certificate fetch; real SNS certs are ~1.5KB.
const maxCertBytes = 64 * 1024

// CertCache resolves a signing-cert URL to PEM bytes. Implementations must
// be safe for concurrent use. The boolean result follows the comma-ok
// convention: a missing or unfetchable certificate is not an error, it is
// a verification failure for the caller to act on.
type CertCache interface {
	Get(ctx context.Context, url string) ([]byte, bool)
}

// HTTPCertCache fetches signing certificates over HTTPS and memoizes them
// by URL for the process lifetime. Entries are never expired: SNS cert URLs
// are content-addressed by rotation, so a new cert arrives under a new URL.
// Concurrent callers for the same uncached URL may each fetch once; the
// fetch is idempotent and the last write wins.
type HTTPCertCache struct {
	mu     sync.RWMutex
	certs  map[string][]byte
	client httpretry.HTTPDoer
}

// NewHTTPCertCache creates a cache backed by a retrying HTTP client. Pass
// nil to use the default client with a bounded timeout.
func NewHTTPCertCache(client httpretry.HTTPDoer) *HTTPCertCache {
	if client == nil {
		client = httpretry.NewRetryClient(nil, 2)
	}
	return &HTTPCertCache{
		certs:  make(map[string][]byte),
		client: client,
	}
}

// Get returns the PEM bytes for the given signing-cert URL, fetching and
// caching on first use. URL validation failures and fetch failures both
// resolve to not-found; failures are never cached.
func (c *HTTPCertCache) Get(ctx context.Context, url string) ([]byte, bool) {
	c.mu.RLock()
	pem, ok := c.certs[url]
	c.mu.RUnlock()
	if ok {
		return pem, true
	}

	if !ValidCertURL(url) {
		logger.Warn("sns: rejected signing cert URL", "url", url)
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("sns: signing cert fetch failed", "url", url, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("sns: signing cert fetch returned non-200", "url", url, "status", resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCertBytes))
	if err != nil || len(body) == 0 {
		return nil, false
	}

	c.mu.Lock()
	c.certs[url] = body
	c.mu.Unlock()

	return body, true
}

// StaticCertCache serves a fixed URL→PEM mapping. Used by tests to
// substitute a pre-populated (or empty, always-failing) cache.
type StaticCertCache map[string][]byte

func (c StaticCertCache) Get(_ context.Context, url string) ([]byte, bool) {
	pem, ok := c[url]
	return pem, ok
}
