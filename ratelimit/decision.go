package ratelimit

import "time"

// DecisionKind enumerates the outcomes of an Acquire call.
type DecisionKind int

const (
	// Proceed means the request was recorded and may be sent now.
	Proceed DecisionKind = iota
	// Delay means the caller must wait and re-invoke Acquire.
	Delay
	// Fatal means the monthly quota is exhausted; do not retry.
	Fatal
)

// Decision is the answer to "may I send a request now?".
type Decision struct {
	Kind   DecisionKind
	Wait   time.Duration
	Reason string
}

func (k DecisionKind) String() string {
	switch k {
	case Proceed:
		return "proceed"
	case Delay:
		return "delay"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}
