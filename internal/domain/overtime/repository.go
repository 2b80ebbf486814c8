package overtime

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Request, error)

	// GetApprovedInRange returns approved requests with dates inside
	// [start, end] for one employee, ordered by date.
	GetApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)

	UpdateStatus(ctx context.Context, req Request) error
}
