package schedule

import (
	"context"
	"time"
)

type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)

	// GetByEmployeeAndDate returns nil when the employee has no entry
	// for the date; callers decide whether that is an error.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Entry, error)

	// GetByEmployeeRange returns entries for [start, end] ordered by date.
	GetByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Entry, error)

	// Correct replaces an entry's times and label. Used for explicit
	// corrections of past days; ordinary updates go through Create.
	Correct(ctx context.Context, entry Entry) error
}
