package jobs

import (
	"context"
	"encoding/json"
	"time"
)

// Job types processed by the worker pool.
const (
	TypeNotifyDecision = "notify.decision"
	TypeReportTriage   = "report.triage"
)

// Job represents a background job
type Job struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Priority    int             `json:"priority"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	NextTryAt   *time.Time      `json:"next_try_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}

// Handler is the function that processes a job
type Handler func(ctx context.Context, j *Job) error

// Queue is the enqueue-side contract handlers depend on; the repository and
// the worker pool both satisfy it.
type Queue interface {
	Enqueue(ctx context.Context, typ string, payload any, priority, maxAttempts int) (int64, error)
}

// DecisionPayload is carried by notify.decision jobs, enqueued when an admin
// approves or rejects a listing.
type DecisionPayload struct {
	PropertyID int64  `json:"property_id"`
	OwnerID    int64  `json:"owner_id"`
	Decision   string `json:"decision"`
	Title      string `json:"title"`
}

// TriagePayload is carried by report.triage jobs, enqueued whenever a user
// files a report against a listing.
type TriagePayload struct {
	PropertyID int64 `json:"property_id"`
}

// BackoffDuration returns exponential backoff duration for attempt n
func BackoffDuration(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	// simple exponential: base 2^attempt seconds, capped
	d := time.Duration(1<<uint(attempt)) * time.Second
	max := 5 * time.Minute
	if d > max {
		return max
	}
	return d
}
