package marketdata

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/newthinker/stratix/internal/core"
)

// CachedProvider memoizes quote lookups with a TTL. Concurrent misses for
// the same symbol collapse into a single upstream fetch.
type CachedProvider struct {
	Provider
	ttl time.Duration
	sf  singleflight.Group

	mu     sync.RWMutex
	quotes map[string]cachedQuote
}

type cachedQuote struct {
	quote   core.Quote
	expires time.Time
}

// NewCachedProvider wraps a provider with a quote cache.
func NewCachedProvider(upstream Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		Provider: upstream,
		ttl:      ttl,
		quotes:   make(map[string]cachedQuote),
	}
}

func (c *CachedProvider) FetchQuote(ctx context.Context, symbol string) (core.Quote, error) {
	c.mu.RLock()
	entry, ok := c.quotes[symbol]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.quote, nil
	}

	result, err, _ := c.sf.Do(symbol, func() (any, error) {
		// Re-check in case another goroutine filled it.
		c.mu.RLock()
		entry, ok := c.quotes[symbol]
		c.mu.RUnlock()
		if ok && time.Now().Before(entry.expires) {
			return entry.quote, nil
		}

		quote, err := c.Provider.FetchQuote(ctx, symbol)
		if err != nil {
			return core.Quote{}, err
		}

		c.mu.Lock()
		c.quotes[symbol] = cachedQuote{quote: quote, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return quote, nil
	})
	if err != nil {
		return core.Quote{}, err
	}
	return result.(core.Quote), nil
}
