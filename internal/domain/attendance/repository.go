package attendance

import (
	"context"
	"time"
)

type PunchRepository interface {
	Create(ctx context.Context, punch Punch) (Punch, error)

	// GetByEmployeeAndDate returns nil when no punch exists for the
	// date. One punch per employee per date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Punch, error)

	// GetByEmployeeRange returns punches dated inside [start, end].
	GetByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Punch, error)

	// SetClockOut records the check-out mutation on an existing punch.
	SetClockOut(ctx context.Context, punchID string, out time.Time, lat, lon *float64) error
}

// SummaryRepository persists summary rows as a cache. Rows are
// overwritten on every recompute and never treated as ground truth.
type SummaryRepository interface {
	Upsert(ctx context.Context, summary Summary) error
	GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (Summary, error)
}
