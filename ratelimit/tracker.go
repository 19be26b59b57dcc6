// Package ratelimit gates outgoing CoinMarketCap requests against the
// per-minute, per-day, and per-month quotas of the caller's plan.
//
// The tracker keeps rolling windows of request timestamps for the minute
// and day horizons and a plain counter for the calendar month. The minute
// quota is enforced locally by delaying callers; the daily quota only
// produces a warning because CoinMarketCap enforces it server-side; the
// monthly quota is a hard local stop.
package ratelimit

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	minuteSpan = time.Minute
	daySpan    = 24 * time.Hour
)

// Limits holds the request quotas for the three horizons. Zero or
// negative values disable enforcement for that horizon.
type Limits struct {
	PerMinute int
	PerDay    int
	PerMonth  int
}

// DefaultLimits returns the free-tier quotas.
func DefaultLimits() Limits {
	return Limits{PerMinute: 10, PerDay: 333, PerMonth: 10000}
}

// Tracker records permitted requests and decides whether the next one may
// proceed. All methods are safe for concurrent use; no method sleeps
// while holding the internal lock.
type Tracker struct {
	Limits Limits
	Clock  func() time.Time
	Logger *zap.Logger

	mu          sync.Mutex
	minute      []time.Time
	day         []time.Time
	monthCount  int
	monthAnchor time.Time
	dayAnchor   time.Time
}

// NewTracker returns a tracker enforcing the given limits.
func NewTracker(limits Limits, logger *zap.Logger) *Tracker {
	return &Tracker{Limits: limits, Logger: logger}
}

// UsageSnapshot reports current usage against the configured limits.
type UsageSnapshot struct {
	MinuteUsed  int `json:"minute_used"`
	MinuteLimit int `json:"minute_limit"`
	DayUsed     int `json:"day_used"`
	DayLimit    int `json:"day_limit"`
	MonthUsed   int `json:"month_used"`
	MonthLimit  int `json:"month_limit"`
}

// Acquire decides whether a request may be sent now.
//
// A Proceed decision records the request. A Delay decision records
// nothing; the caller must sleep for the returned wait and then invoke
// Acquire again, since another caller may take the slot in the meantime.
// A Fatal decision means the monthly quota is exhausted and the request
// must not be retried.
func (t *Tracker) Acquire() Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.maintain(now)

	if t.Limits.PerMonth > 0 && t.monthCount >= t.Limits.PerMonth {
		return Decision{Kind: Fatal, Reason: "monthly quota exhausted"}
	}

	if t.Limits.PerDay > 0 && len(t.day) >= t.Limits.PerDay {
		// Daily cap is enforced server-side; warn and let it through.
		t.logger().Warn("daily quota reached",
			zap.Int("used", len(t.day)),
			zap.Int("limit", t.Limits.PerDay))
	}

	if t.Limits.PerMinute > 0 && len(t.minute) >= t.Limits.PerMinute {
		if wait := t.minute[0].Add(minuteSpan).Sub(now); wait > 0 {
			return Decision{Kind: Delay, Wait: wait}
		}
	}

	t.minute = append(t.minute, now)
	t.day = append(t.day, now)
	t.monthCount++
	t.noteThresholds()

	return Decision{Kind: Proceed}
}

// Status reports usage after purging stale window entries. It never
// records a request.
func (t *Tracker) Status() UsageSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.maintain(t.now())

	return UsageSnapshot{
		MinuteUsed:  len(t.minute),
		MinuteLimit: t.Limits.PerMinute,
		DayUsed:     len(t.day),
		DayLimit:    t.Limits.PerDay,
		MonthUsed:   t.monthCount,
		MonthLimit:  t.Limits.PerMonth,
	}
}

// Reset clears all windows and counters unconditionally.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.minute = nil
	t.day = nil
	t.monthCount = 0
	t.monthAnchor = time.Time{}
	t.dayAnchor = time.Time{}
}

// maintain purges stale entries and applies calendar boundary resets.
// Callers must hold the lock.
func (t *Tracker) maintain(now time.Time) {
	if t.monthAnchor.IsZero() || now.Year() != t.monthAnchor.Year() || now.Month() != t.monthAnchor.Month() {
		t.monthCount = 0
		t.monthAnchor = now
	}

	// The day window resets wholesale at the midnight crossing, on top
	// of the rolling 24h purge below.
	if t.dayAnchor.IsZero() || !sameDate(now, t.dayAnchor) {
		t.day = t.day[:0]
		t.dayAnchor = now
	}

	t.minute = purge(t.minute, now.Add(-minuteSpan))
	t.day = purge(t.day, now.Add(-daySpan))
}

func (t *Tracker) noteThresholds() {
	t.noteHorizon("minute", len(t.minute), t.Limits.PerMinute)
	t.noteHorizon("day", len(t.day), t.Limits.PerDay)
	t.noteHorizon("month", t.monthCount, t.Limits.PerMonth)
}

// noteHorizon emits an informational warning when usage crosses 80% of a
// quota. The warning is a side channel and never affects decisions.
func (t *Tracker) noteHorizon(horizon string, used, limit int) {
	if limit <= 0 {
		return
	}
	threshold := limit * 4 / 5
	if threshold > 0 && used == threshold {
		t.logger().Warn("approaching quota",
			zap.String("horizon", horizon),
			zap.Int("used", used),
			zap.Int("limit", limit))
	}
}

func (t *Tracker) now() time.Time {
	if t.Clock != nil {
		return t.Clock()
	}
	return time.Now()
}

func (t *Tracker) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}

// purge drops timestamps at or before the cutoff. Windows are ordered,
// so only a prefix is ever removed.
func purge(window []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(window) && !window[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return window
	}
	return append(window[:0], window[idx:]...)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
