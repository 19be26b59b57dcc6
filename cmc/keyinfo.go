package cmc

import (
	"context"
	"encoding/json"
	"fmt"
)

// KeyPlan describes the plan limits attached to the API key.
type KeyPlan struct {
	CreditLimitDaily        int64  `json:"credit_limit_daily"`
	CreditLimitMonthly      int64  `json:"credit_limit_monthly"`
	RateLimitMinute         int    `json:"rate_limit_minute"`
	CreditLimitDailyReset   string `json:"credit_limit_daily_reset"`
	CreditLimitMonthlyReset string `json:"credit_limit_monthly_reset"`
}

// KeyPeriodUsage is usage within one server-side accounting period.
type KeyPeriodUsage struct {
	RequestsMade int   `json:"requests_made"`
	RequestsLeft int   `json:"requests_left"`
	CreditsUsed  int64 `json:"credits_used"`
	CreditsLeft  int64 `json:"credits_left"`
}

// KeyUsage is the server's view of current usage.
type KeyUsage struct {
	CurrentMinute KeyPeriodUsage `json:"current_minute"`
	CurrentDay    KeyPeriodUsage `json:"current_day"`
	CurrentMonth  KeyPeriodUsage `json:"current_month"`
}

// KeyInfo is the /v1/key/info payload: the authoritative quota state to
// reconcile against the local tracker's snapshot.
type KeyInfo struct {
	Plan  KeyPlan  `json:"plan"`
	Usage KeyUsage `json:"usage"`
}

// KeyInfo fetches plan and usage details for the configured API key.
func (c *Client) KeyInfo(ctx context.Context) (*KeyInfo, error) {
	result, err := c.Get(ctx, "/v1/key/info", nil)
	if err != nil {
		return nil, err
	}

	var info KeyInfo
	if err := json.Unmarshal(result.Data, &info); err != nil {
		return nil, fmt.Errorf("decode key info: %w", err)
	}
	return &info, nil
}
