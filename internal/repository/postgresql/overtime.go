package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/overtime"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.RequestRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `
	id, employee_id, date, start_time, end_time, duration_hours, reason,
	status, approver_id, decided_at, submitted_at, created_at, updated_at
`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var req overtime.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.StartTime, &req.EndTime,
		&req.DurationHours, &req.Reason, &req.Status, &req.ApproverID,
		&req.DecidedAt, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements overtime.RequestRepository.
func (r *overtimeRepository) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			employee_id, date, start_time, end_time, duration_hours,
			reason, status, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Date, req.StartTime, req.EndTime,
		req.DurationHours, req.Reason, req.Status, req.SubmittedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return overtime.Request{}, overtime.ErrDuplicateRequest
		}
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return req, nil
}

// GetByID implements overtime.RequestRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_requests WHERE id = $1`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return req, nil
}

// GetByEmployeeAndDate implements overtime.RequestRepository.
func (r *overtimeRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND date = $2 AND status != 'rejected'
		ORDER BY submitted_at DESC
		LIMIT 1
	`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return &req, nil
}

// GetApprovedInRange implements overtime.RequestRepository.
func (r *overtimeRepository) GetApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND status = 'approved'
		  AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	requests := make([]overtime.Request, 0)
	for rows.Next() {
		req, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus implements overtime.RequestRepository.
func (r *overtimeRepository) UpdateStatus(ctx context.Context, req overtime.Request) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, approver_id = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Status, req.ApproverID, req.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update overtime request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrRequestNotFound
	}
	return nil
}
