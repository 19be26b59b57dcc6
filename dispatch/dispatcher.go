// Package dispatch executes one logical CoinMarketCap API call
// end-to-end: it gates on the rate-limit tracker, sends through the
// injected transport, classifies failures, and retries transient ones
// with exponential backoff.
package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coinlens/coinlens/ratelimit"
	"github.com/coinlens/coinlens/transport"
)

const (
	// DefaultMaxRetries bounds retries of transient failures.
	DefaultMaxRetries = 3
	// DefaultInitialBackoff is the first retry delay; it doubles per attempt.
	DefaultInitialBackoff = time.Second
	// DefaultRequestSpacing is the courtesy floor between consecutive
	// dispatches, independent of the tracker.
	DefaultRequestSpacing = 200 * time.Millisecond
)

// Dispatcher orchestrates single logical API calls. Zero values of the
// tunable fields fall back to the package defaults; a nil Tracker
// disables local rate limiting.
type Dispatcher struct {
	Transport transport.Transport
	Tracker   *ratelimit.Tracker
	Logger    *zap.Logger
	Clock     func() time.Time

	// Sleep is swappable for tests; the default honors context
	// cancellation.
	Sleep func(ctx context.Context, d time.Duration) error

	// MaxRetries bounds retries of transient failures. Zero means
	// DefaultMaxRetries; negative disables retries entirely.
	MaxRetries     int
	InitialBackoff time.Duration
	// RequestSpacing is the floor between consecutive dispatches. Zero
	// means DefaultRequestSpacing; negative disables pacing.
	RequestSpacing time.Duration

	mu     sync.Mutex
	nextAt time.Time
}

// Result is the unwrapped outcome of a successful call.
type Result struct {
	// Data is the envelope's data field, or the raw body when the
	// response carried no envelope.
	Data        json.RawMessage
	HTTPStatus  int
	CreditCount int
}

type envelope struct {
	Status *envelopeStatus `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type envelopeStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	CreditCount  int    `json:"credit_count"`
}

// Execute runs one logical call against the given endpoint. It consults
// the tracker exactly once per logical call: retries reuse the slot the
// first attempt acquired. Every call terminates in a *Result or a typed
// *Error; cancellation during any sleep returns the context error.
func (d *Dispatcher) Execute(ctx context.Context, endpoint string, req transport.Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.New().String()
	log := d.logger().With(
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
	)

	if err := d.gate(ctx, endpoint, requestID, log); err != nil {
		return nil, err
	}

	backoff := d.initialBackoff()
	maxRetries := d.maxRetries()

	for attempt := 1; ; attempt++ {
		if err := d.pace(ctx); err != nil {
			return nil, err
		}

		resp, sendErr := d.Transport.Send(ctx, req)
		result, callErr := d.evaluate(endpoint, requestID, resp, sendErr)
		if callErr == nil {
			return result, nil
		}
		if !callErr.Kind.Retryable() || attempt > maxRetries {
			return nil, callErr
		}

		wait := backoff
		if retryAfter := retryAfterHeader(resp); retryAfter > 0 {
			wait = retryAfter
		}
		log.Warn("transient failure, retrying",
			zap.String("kind", string(callErr.Kind)),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Int("http_status", callErr.HTTPStatus))

		if err := d.sleep(ctx, wait); err != nil {
			return nil, err
		}
		backoff *= 2
	}
}

// gate loops on the tracker until the call may proceed. A Delay decision
// does not reserve the slot, so every wake re-acquires.
func (d *Dispatcher) gate(ctx context.Context, endpoint, requestID string, log *zap.Logger) error {
	if d.Tracker == nil {
		return nil
	}

	for {
		decision := d.Tracker.Acquire()
		switch decision.Kind {
		case ratelimit.Proceed:
			return nil
		case ratelimit.Fatal:
			return &Error{
				Kind:      KindQuotaExceeded,
				Message:   decision.Reason,
				Endpoint:  endpoint,
				RequestID: requestID,
			}
		case ratelimit.Delay:
			log.Debug("rate limit delay", zap.Duration("wait", decision.Wait))
			if err := d.sleep(ctx, decision.Wait); err != nil {
				return err
			}
		}
	}
}

// pace enforces the inter-request spacing floor. The slot is reserved
// under the lock and the sleep happens outside it.
func (d *Dispatcher) pace(ctx context.Context) error {
	spacing := d.RequestSpacing
	if spacing < 0 {
		return nil
	}
	if spacing == 0 {
		spacing = DefaultRequestSpacing
	}

	d.mu.Lock()
	now := d.now()
	var wait time.Duration
	if d.nextAt.After(now) {
		wait = d.nextAt.Sub(now)
		d.nextAt = d.nextAt.Add(spacing)
	} else {
		d.nextAt = now.Add(spacing)
	}
	d.mu.Unlock()

	if wait > 0 {
		return d.sleep(ctx, wait)
	}
	return nil
}

func (d *Dispatcher) evaluate(endpoint, requestID string, resp *transport.Response, sendErr error) (*Result, *Error) {
	if sendErr != nil {
		return nil, &Error{
			Kind:      KindTransientNetwork,
			Message:   sendErr.Error(),
			Endpoint:  endpoint,
			RequestID: requestID,
		}
	}

	var env envelope
	hasEnvelope := json.Unmarshal(resp.Body, &env) == nil && env.Status != nil

	appCode := 0
	if hasEnvelope {
		appCode = env.Status.ErrorCode
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && appCode == 0 {
		result := &Result{Data: resp.Body, HTTPStatus: resp.StatusCode}
		if hasEnvelope {
			result.CreditCount = env.Status.CreditCount
			if len(env.Data) > 0 {
				result.Data = env.Data
			}
		}
		return result, nil
	}

	message := http.StatusText(resp.StatusCode)
	if hasEnvelope && env.Status.ErrorMessage != "" {
		message = env.Status.ErrorMessage
	}

	return nil, &Error{
		Kind:       Classify(resp.StatusCode, appCode),
		Message:    message,
		Endpoint:   endpoint,
		HTTPStatus: resp.StatusCode,
		AppCode:    appCode,
		RequestID:  requestID,
	}
}

// retryAfterHeader parses a Retry-After header as either delay seconds
// or an HTTP date. When present and parseable it overrides the computed
// backoff for that attempt.
func retryAfterHeader(resp *transport.Response) time.Duration {
	if resp == nil {
		return 0
	}

	retry := resp.Header("Retry-After")
	if retry == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retry); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if parsed, err := http.ParseTime(retry); err == nil {
		return time.Until(parsed)
	}

	return 0
}

func (d *Dispatcher) sleep(ctx context.Context, wait time.Duration) error {
	if d.Sleep != nil {
		return d.Sleep(ctx, wait)
	}
	return sleepContext(ctx, wait)
}

func sleepContext(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (d *Dispatcher) maxRetries() int {
	if d.MaxRetries < 0 {
		return 0
	}
	if d.MaxRetries == 0 {
		return DefaultMaxRetries
	}
	return d.MaxRetries
}

func (d *Dispatcher) initialBackoff() time.Duration {
	if d.InitialBackoff > 0 {
		return d.InitialBackoff
	}
	return DefaultInitialBackoff
}

func (d *Dispatcher) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop()
}
