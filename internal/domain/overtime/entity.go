package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// CanTransition reports whether moving from s to target is allowed.
// Overtime requests are decided exactly once.
func (s RequestStatus) CanTransition(target RequestStatus) bool {
	return s == StatusPending && (target == StatusApproved || target == StatusRejected)
}

// Request is an overtime application for a single date. Overtime is an
// explicit, separately approved entitlement; it is never derived from
// punches.
type Request struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	StartTime     time.Time
	EndTime       time.Time
	DurationHours decimal.Decimal
	Reason        string

	Status     RequestStatus
	ApproverID *string
	DecidedAt  *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeDuration returns the overtime span in hours, rounded to 2
// decimals. An end earlier than the start spans midnight and gains 24h.
// A zero-length span is malformed input, not clamped silently.
func ComputeDuration(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	minutes := end.Sub(start).Minutes()
	if minutes <= 0 {
		return decimal.Zero, &NegativeDurationError{Start: start, End: end}
	}
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2), nil
}
