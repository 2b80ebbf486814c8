package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, type, start_date, end_date, day_count, reason,
	status, approver_id, decided_at, cancelled_by, cancelled_at,
	submitted_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate,
		&req.DayCount, &req.Reason, &req.Status, &req.ApproverID, &req.DecidedAt,
		&req.CancelledBy, &req.CancelledAt, &req.SubmittedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, type, start_date, end_date, day_count, reason,
			status, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Type, req.StartDate, req.EndDate,
		req.DayCount, req.Reason, req.Status, req.SubmittedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// GetApprovedCovering implements leave.RequestRepository.
func (r *leaveRequestRepository) GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]leave.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'approved'
		  AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date
	`

	return r.queryRequests(ctx, q, query, employeeID, date)
}

// GetApprovedOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepository) GetApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'approved'
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	return r.queryRequests(ctx, q, query, employeeID, start, end)
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, req leave.Request) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reason = $3, approver_id = $4, decided_at = $5,
			cancelled_by = $6, cancelled_at = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID, req.Status, req.Reason, req.ApproverID, req.DecidedAt,
		req.CancelledBy, req.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND EXTRACT(YEAR FROM start_date) = $2
		ORDER BY start_date DESC
	`

	return r.queryRequests(ctx, q, query, employeeID, year)
}

func (r *leaveRequestRepository) queryRequests(ctx context.Context, q database.Querier, query string, args ...any) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
