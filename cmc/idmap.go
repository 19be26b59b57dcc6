package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MapEntry is one row of /v1/cryptocurrency/map.
type MapEntry struct {
	ID                  int64      `json:"id"`
	Rank                int64      `json:"rank"`
	Name                string     `json:"name"`
	Symbol              string     `json:"symbol"`
	Slug                string     `json:"slug"`
	IsActive            int        `json:"is_active"`
	FirstHistoricalData *time.Time `json:"first_historical_data"`
	LastHistoricalData  *time.Time `json:"last_historical_data"`
}

// IDMap resolves symbols to CoinMarketCap IDs. Results are cached in an
// expirable LRU so repeated lookups do not spend quota; only symbols
// missing from the cache are fetched.
func (c *Client) IDMap(ctx context.Context, symbols []string) ([]MapEntry, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol is required")
	}

	cache := c.idMapCache()

	entries := make([]MapEntry, 0, len(symbols))
	var missing []string
	for _, symbol := range normalizeSymbols(symbols) {
		if entry, ok := cache.Get(symbol); ok {
			entries = append(entries, entry)
			continue
		}
		missing = append(missing, symbol)
	}

	if len(missing) == 0 {
		return entries, nil
	}

	result, err := c.Get(ctx, "/v1/cryptocurrency/map", Params{"symbol": missing})
	if err != nil {
		return nil, err
	}

	var fetched []MapEntry
	if err := json.Unmarshal(result.Data, &fetched); err != nil {
		return nil, fmt.Errorf("decode id map: %w", err)
	}

	for _, entry := range fetched {
		cache.Add(strings.ToUpper(entry.Symbol), entry)
	}
	entries = append(entries, fetched...)

	return entries, nil
}

// SymbolID resolves a single symbol to its CoinMarketCap ID.
func (c *Client) SymbolID(ctx context.Context, symbol string) (int64, error) {
	entries, err := c.IDMap(ctx, []string{symbol})
	if err != nil {
		return 0, err
	}

	want := strings.ToUpper(strings.TrimSpace(symbol))
	for _, entry := range entries {
		if strings.ToUpper(entry.Symbol) == want {
			return entry.ID, nil
		}
	}
	return 0, fmt.Errorf("symbol %q not found", symbol)
}

func (c *Client) idMapCache() *expirable.LRU[string, MapEntry] {
	c.idMapOnce.Do(func() {
		ttl := c.IDMapTTL
		if ttl <= 0 {
			ttl = defaultIDMapTTL
		}
		c.idMap = expirable.NewLRU[string, MapEntry](defaultIDMapSize, nil, ttl)
	})
	return c.idMap
}
