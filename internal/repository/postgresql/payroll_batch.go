package postgresql

import (
	"context"
	"fmt"

	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollBatchRepository struct {
	db *database.DB
}

func NewPayrollBatchRepository(db *database.DB) payroll.BatchRepository {
	return &payrollBatchRepository{db: db}
}

const batchColumns = `
	id, period_start, period_end, period_type, status,
	total_amount, total_employees,
	submitted_at, submitted_by, approved_at, approved_by,
	rejected_at, rejected_by, paid_at, paid_by,
	created_at, updated_at
`

func scanBatch(row pgx.Row) (payroll.Batch, error) {
	var b payroll.Batch
	err := row.Scan(
		&b.ID, &b.PeriodStart, &b.PeriodEnd, &b.PeriodType, &b.Status,
		&b.TotalAmount, &b.TotalEmployees,
		&b.SubmittedAt, &b.SubmittedBy, &b.ApprovedAt, &b.ApprovedBy,
		&b.RejectedAt, &b.RejectedBy, &b.PaidAt, &b.PaidBy,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Create implements payroll.BatchRepository.
func (r *payrollBatchRepository) Create(ctx context.Context, batch payroll.Batch) (payroll.Batch, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_batches (
			period_start, period_end, period_type, status, total_amount, total_employees
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		batch.PeriodStart, batch.PeriodEnd, batch.PeriodType,
		batch.Status, batch.TotalAmount, batch.TotalEmployees,
	).Scan(&batch.ID, &batch.CreatedAt, &batch.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Batch{}, payroll.ErrBatchExists
		}
		return payroll.Batch{}, fmt.Errorf("failed to create batch: %w", err)
	}
	return batch, nil
}

// GetByID implements payroll.BatchRepository.
func (r *payrollBatchRepository) GetByID(ctx context.Context, id string) (payroll.Batch, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches WHERE id = $1`

	batch, err := scanBatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Batch{}, payroll.ErrBatchNotFound
		}
		return payroll.Batch{}, fmt.Errorf("failed to get batch: %w", err)
	}
	return batch, nil
}

// List implements payroll.BatchRepository.
func (r *payrollBatchRepository) List(ctx context.Context, status *payroll.BatchStatus) ([]payroll.Batch, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY period_start DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	batches := make([]payroll.Batch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// UpdateStatus implements payroll.BatchRepository. The batch row and
// its lifecycle event are written in the caller's transaction.
func (r *payrollBatchRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, batch payroll.Batch, event payroll.Event) error {
	query := `
		UPDATE payroll_batches
		SET status = $2,
			submitted_at = $3, submitted_by = $4,
			approved_at = $5, approved_by = $6,
			rejected_at = $7, rejected_by = $8,
			paid_at = $9, paid_by = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		batch.ID, batch.Status,
		batch.SubmittedAt, batch.SubmittedBy,
		batch.ApprovedAt, batch.ApprovedBy,
		batch.RejectedAt, batch.RejectedBy,
		batch.PaidAt, batch.PaidBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBatchNotFound
	}

	eventQuery := `
		INSERT INTO payroll_batch_events (batch_id, from_status, to_status, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, eventQuery,
		event.BatchID, event.From, event.To, event.ActorID, event.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to record batch event: %w", err)
	}
	return nil
}

// UpdateTotals implements payroll.BatchRepository.
func (r *payrollBatchRepository) UpdateTotals(ctx context.Context, tx pgx.Tx, batchID string, total payroll.Batch) error {
	query := `
		UPDATE payroll_batches
		SET total_amount = $2, total_employees = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, batchID, total.TotalAmount, total.TotalEmployees)
	if err != nil {
		return fmt.Errorf("failed to update batch totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBatchNotFound
	}
	return nil
}

// Delete implements payroll.BatchRepository. Lines and events cascade.
func (r *payrollBatchRepository) Delete(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBatchNotFound
	}
	return nil
}

// ListEvents implements payroll.BatchRepository.
func (r *payrollBatchRepository) ListEvents(ctx context.Context, batchID string) ([]payroll.Event, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, from_status, to_status, actor_id, created_at
		FROM payroll_batch_events
		WHERE batch_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch events: %w", err)
	}
	defer rows.Close()

	events := make([]payroll.Event, 0)
	for rows.Next() {
		var e payroll.Event
		if err := rows.Scan(&e.ID, &e.BatchID, &e.From, &e.To, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type payrollLineRepository struct {
	db *database.DB
}

func NewPayrollLineRepository(db *database.DB) payroll.LineRepository {
	return &payrollLineRepository{db: db}
}

const lineColumns = `
	pl.id, pl.batch_id, pl.employee_id,
	pl.base_pay, pl.allowances, pl.deductions, pl.overtime_pay,
	pl.lateness_deduction, pl.correction, pl.correction_reason, pl.total,
	pl.status, pl.error_kind, pl.created_at, pl.updated_at,
	e.full_name AS employee_name, e.employee_code AS employee_code
`

func scanLine(row pgx.Row) (payroll.Line, error) {
	var l payroll.Line
	err := row.Scan(
		&l.ID, &l.BatchID, &l.EmployeeID,
		&l.BasePay, &l.Allowances, &l.Deductions, &l.OvertimePay,
		&l.LatenessDeduction, &l.Correction, &l.CorrectionReason, &l.Total,
		&l.Status, &l.ErrorKind, &l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName, &l.EmployeeCode,
	)
	return l, err
}

// GetByID implements payroll.LineRepository.
func (r *payrollLineRepository) GetByID(ctx context.Context, id string) (payroll.Line, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineColumns + `
		FROM payroll_lines pl
		JOIN employees e ON pl.employee_id = e.id
		WHERE pl.id = $1
	`

	line, err := scanLine(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Line{}, payroll.ErrLineNotFound
		}
		return payroll.Line{}, fmt.Errorf("failed to get line: %w", err)
	}
	return line, nil
}

// ListByBatch implements payroll.LineRepository.
func (r *payrollLineRepository) ListByBatch(ctx context.Context, batchID string) ([]payroll.Line, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineColumns + `
		FROM payroll_lines pl
		JOIN employees e ON pl.employee_id = e.id
		WHERE pl.batch_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	defer rows.Close()

	lines := make([]payroll.Line, 0)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ReplaceForBatch implements payroll.LineRepository.
func (r *payrollLineRepository) ReplaceForBatch(ctx context.Context, tx pgx.Tx, batchID string, lines []payroll.Line) error {
	if _, err := tx.Exec(ctx, `DELETE FROM payroll_lines WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("failed to clear batch lines: %w", err)
	}

	query := `
		INSERT INTO payroll_lines (
			batch_id, employee_id, base_pay, allowances, deductions,
			overtime_pay, lateness_deduction, correction, correction_reason,
			total, status, error_kind
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, l := range lines {
		if _, err := tx.Exec(ctx, query,
			batchID, l.EmployeeID, l.BasePay, l.Allowances, l.Deductions,
			l.OvertimePay, l.LatenessDeduction, l.Correction, l.CorrectionReason,
			l.Total, l.Status, l.ErrorKind,
		); err != nil {
			return fmt.Errorf("failed to insert line for employee %s: %w", l.EmployeeID, err)
		}
	}
	return nil
}

// UpdateCorrection implements payroll.LineRepository.
func (r *payrollLineRepository) UpdateCorrection(ctx context.Context, tx pgx.Tx, line payroll.Line) error {
	query := `
		UPDATE payroll_lines
		SET correction = $2, correction_reason = $3, total = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, line.ID, line.Correction, line.CorrectionReason, line.Total)
	if err != nil {
		return fmt.Errorf("failed to update correction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrLineNotFound
	}
	return nil
}

// CountErrorLines implements payroll.LineRepository.
func (r *payrollLineRepository) CountErrorLines(ctx context.Context, batchID string) (int, error) {
	q := database.GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM payroll_lines WHERE batch_id = $1 AND status = 'error'`,
		batchID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count error lines: %w", err)
	}
	return count, nil
}
