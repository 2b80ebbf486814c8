package postgresql

import (
	"context"
	"fmt"

	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveQuotaRepository struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.QuotaRepository {
	return &leaveQuotaRepository{db: db}
}

const leaveQuotaColumns = `
	id, employee_id, year, granted, used, remaining, created_at, updated_at
`

func scanLeaveQuota(row pgx.Row) (leave.Quota, error) {
	var quota leave.Quota
	err := row.Scan(
		&quota.ID, &quota.EmployeeID, &quota.Year,
		&quota.Granted, &quota.Used, &quota.Remaining,
		&quota.CreatedAt, &quota.UpdatedAt,
	)
	return quota, err
}

// Create implements leave.QuotaRepository.
func (r *leaveQuotaRepository) Create(ctx context.Context, quota leave.Quota) (leave.Quota, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_quotas (employee_id, year, granted, used, remaining)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		quota.EmployeeID, quota.Year, quota.Granted, quota.Used, quota.Remaining,
	).Scan(&quota.ID, &quota.CreatedAt, &quota.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.Quota{}, leave.ErrQuotaExists
		}
		return leave.Quota{}, fmt.Errorf("failed to create leave quota: %w", err)
	}
	return quota, nil
}

// GetByEmployeeYear implements leave.QuotaRepository.
func (r *leaveQuotaRepository) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (leave.Quota, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveQuotaColumns + ` FROM leave_quotas WHERE employee_id = $1 AND year = $2`

	quota, err := scanLeaveQuota(q.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Quota{}, leave.ErrQuotaNotFound
		}
		return leave.Quota{}, fmt.Errorf("failed to get leave quota: %w", err)
	}
	return quota, nil
}

// GetByEmployeeYearForUpdate implements leave.QuotaRepository. The row
// lock serializes concurrent approvals for one employee/year.
func (r *leaveQuotaRepository) GetByEmployeeYearForUpdate(ctx context.Context, tx pgx.Tx, employeeID string, year int) (leave.Quota, error) {
	query := `
		SELECT ` + leaveQuotaColumns + `
		FROM leave_quotas
		WHERE employee_id = $1 AND year = $2
		FOR UPDATE
	`

	quota, err := scanLeaveQuota(tx.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Quota{}, leave.ErrQuotaNotFound
		}
		return leave.Quota{}, fmt.Errorf("failed to lock leave quota: %w", err)
	}
	return quota, nil
}

// UpdateBalances implements leave.QuotaRepository.
func (r *leaveQuotaRepository) UpdateBalances(ctx context.Context, tx pgx.Tx, quota leave.Quota) error {
	query := `
		UPDATE leave_quotas
		SET used = $2, remaining = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, quota.ID, quota.Used, quota.Remaining)
	if err != nil {
		return fmt.Errorf("failed to update quota balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrQuotaNotFound
	}
	return nil
}

// ListEmployeesWithoutQuota implements leave.QuotaRepository.
func (r *leaveQuotaRepository) ListEmployeesWithoutQuota(ctx context.Context, year int) ([]string, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT e.id
		FROM employees e
		LEFT JOIN leave_quotas lq ON lq.employee_id = e.id AND lq.year = $1
		WHERE e.active AND lq.id IS NULL
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees without quota: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
