// Package coinlens is a client library for the CoinMarketCap v1 API
// with built-in client-side rate limiting and retry handling.
//
// The cmc package is the entry point:
//
//	cfg, err := config.Load("")
//	cfg.APIKey = os.Getenv("CMC_API_KEY")
//	client := cmc.New(cfg, logger)
//	quotes, err := client.QuotesLatest(ctx, []string{"BTC"}, "USD")
//
// Requests are gated by a tracker enforcing per-minute, per-day, and
// per-month quotas (ratelimit package) and executed through a dispatcher
// that classifies failures and retries transient ones with exponential
// backoff (dispatch package). Both are independently usable with any
// transport.
package coinlens
