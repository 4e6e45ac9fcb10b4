package orchestrator

import (
	"fmt"
	"sync"
	"time"

	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/shopspring/decimal"
)

// cacheEntry holds one aggregation result until its TTL passes or any cached
// quote expires.
type cacheEntry struct {
	quotes    []*types.BridgeQuote
	quoteErrs []QuoteError
	expiresAt time.Time
}

// quoteCache is an explicit, time-bounded cache of quote aggregations keyed
// by (source, dest, token, amount). Owned by the orchestrator; execution
// paths never read it.
type quoteCache struct {
	ttl          time.Duration
	entriesMutex sync.Mutex
	entries      map[string]*cacheEntry
}

func newQuoteCache(ttl time.Duration) *quoteCache {
	return &quoteCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

func cacheKey(source, dest types.Network, token string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s|%s|%s|%s", source, dest, token, amount.String())
}

func (c *quoteCache) get(source, dest types.Network, token string, amount decimal.Decimal) ([]*types.BridgeQuote, []QuoteError, bool) {
	if c.ttl <= 0 {
		return nil, nil, false
	}

	key := cacheKey(source, dest, token, amount)

	c.entriesMutex.Lock()
	defer c.entriesMutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil, false
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, nil, false
	}

	// A cached quote that has itself expired invalidates the whole entry.
	for _, quote := range entry.quotes {
		if quote.IsExpired() {
			delete(c.entries, key)
			return nil, nil, false
		}
	}

	// Callers get their own copies; mutating a returned quote must not edit
	// the cache.
	return copyQuotes(entry.quotes), append([]QuoteError(nil), entry.quoteErrs...), true
}

func (c *quoteCache) put(source, dest types.Network, token string, amount decimal.Decimal, quotes []*types.BridgeQuote, quoteErrs []QuoteError) {
	if c.ttl <= 0 {
		return
	}

	c.entriesMutex.Lock()
	defer c.entriesMutex.Unlock()

	// Stored copies are independent of the slice handed to the caller of the
	// aggregation that populated the cache.
	c.entries[cacheKey(source, dest, token, amount)] = &cacheEntry{
		quotes:    copyQuotes(quotes),
		quoteErrs: append([]QuoteError(nil), quoteErrs...),
		expiresAt: time.Now().Add(c.ttl),
	}
}

func copyQuotes(quotes []*types.BridgeQuote) []*types.BridgeQuote {
	if quotes == nil {
		return nil
	}

	out := make([]*types.BridgeQuote, len(quotes))
	for i, quote := range quotes {
		copied := *quote
		out[i] = &copied
	}
	return out
}
