package leave

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// GetApprovedCovering returns approved requests whose range contains
	// the date, for one employee.
	GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]Request, error)

	// GetApprovedOverlapping returns approved requests overlapping
	// [start, end] for one employee.
	GetApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)

	// UpdateStatus persists a decided request (status, approver, timestamps).
	UpdateStatus(ctx context.Context, req Request) error

	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Request, error)
}

type QuotaRepository interface {
	Create(ctx context.Context, quota Quota) (Quota, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (Quota, error)

	// GetByEmployeeYearForUpdate locks the quota row inside tx so that
	// concurrent approvals for the same employee/year serialize.
	GetByEmployeeYearForUpdate(ctx context.Context, tx pgx.Tx, employeeID string, year int) (Quota, error)

	// UpdateBalances writes used/remaining inside tx.
	UpdateBalances(ctx context.Context, tx pgx.Tx, quota Quota) error

	// ListEmployeesWithoutQuota returns active employee ids lacking a
	// quota row for the year. Used by the yearly grant job.
	ListEmployeesWithoutQuota(ctx context.Context, year int) ([]string, error)
}
