package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Quote holds market data for one asset in one convert currency.
type Quote struct {
	Price                 decimal.Decimal `json:"price"`
	Volume24H             decimal.Decimal `json:"volume_24h"`
	VolumeChange24H       float64         `json:"volume_change_24h"`
	PercentChange1H       float64         `json:"percent_change_1h"`
	PercentChange24H      float64         `json:"percent_change_24h"`
	PercentChange7D       float64         `json:"percent_change_7d"`
	MarketCap             decimal.Decimal `json:"market_cap"`
	MarketCapDominance    float64         `json:"market_cap_dominance"`
	FullyDilutedMarketCap decimal.Decimal `json:"fully_diluted_market_cap"`
	LastUpdated           time.Time       `json:"last_updated"`
}

// QuoteData is one asset's entry from /v1/cryptocurrency/quotes/latest.
type QuoteData struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Symbol            string           `json:"symbol"`
	Slug              string           `json:"slug"`
	CMCRank           int64            `json:"cmc_rank"`
	NumMarketPairs    int64            `json:"num_market_pairs"`
	CirculatingSupply float64          `json:"circulating_supply"`
	TotalSupply       float64          `json:"total_supply"`
	MaxSupply         float64          `json:"max_supply"`
	DateAdded         time.Time        `json:"date_added"`
	LastUpdated       time.Time        `json:"last_updated"`
	Tags              []string         `json:"tags"`
	Quote             map[string]Quote `json:"quote"`
}

// QuotesLatest fetches latest quotes for the given symbols, keyed by
// upper-cased symbol. Convert defaults to USD server-side when empty.
func (c *Client) QuotesLatest(ctx context.Context, symbols []string, convert string) (map[string]QuoteData, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol is required")
	}

	params := Params{"symbol": normalizeSymbols(symbols)}
	if convert != "" {
		params["convert"] = strings.ToUpper(convert)
	}

	result, err := c.Get(ctx, "/v1/cryptocurrency/quotes/latest", params)
	if err != nil {
		return nil, err
	}

	var quotes map[string]QuoteData
	if err := json.Unmarshal(result.Data, &quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return quotes, nil
}

func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol != "" {
			out = append(out, symbol)
		}
	}
	return out
}
