// Package assets checks whether illustration images exist on the static asset
// origin. Probe failures degrade the page (no image) and are never surfaced
// to the visitor.
package assets

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Prober answers existence checks for illustration images, caching results
// per key for the process lifetime. The illustration set is tiny and
// immutable within a deployment, so there is no cache invalidation.
type Prober struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	cache   sync.Map // key -> bool
}

// NewProber builds a prober against the given asset origin.
func NewProber(baseURL string, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     logger,
	}
}

// ImageURL returns the public URL for an illustration key.
func (p *Prober) ImageURL(key string) string {
	return p.baseURL + "/images/" + key + ".webp"
}

// ImageExists reports whether the illustration for key is served by the asset
// origin. Any probe failure yields false.
func (p *Prober) ImageExists(ctx context.Context, key string) bool {
	if v, ok := p.cache.Load(key); ok {
		return v.(bool)
	}
	exists := p.probe(ctx, key)
	p.cache.Store(key, exists)
	return exists
}

func (p *Prober) probe(ctx context.Context, key string) bool {
	url := p.ImageURL(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Warn("image probe failed", zap.String("url", url), zap.Error(err))
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true
	case resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented:
		// Origin does not speak HEAD; fall back to a one-byte ranged GET.
		return p.probeRange(ctx, url)
	default:
		return false
	}
}

func (p *Prober) probeRange(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Range", "bytes=0-0")
	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Warn("ranged image probe failed", zap.String("url", url), zap.Error(err))
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent
}
