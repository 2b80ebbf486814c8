package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.EntryRepository {
	return &scheduleRepository{db: db}
}

// Create implements schedule.EntryRepository.
func (r *scheduleRepository) Create(ctx context.Context, entry schedule.Entry) (schedule.Entry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_entries (
			employee_id, date, shift_label, expected_in, expected_out, status_label
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.Date,
		entry.ShiftLabel,
		entry.ExpectedIn,
		entry.ExpectedOut,
		entry.StatusLabel,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return schedule.Entry{}, schedule.ErrEntryExists
		}
		return schedule.Entry{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return entry, nil
}

// GetByEmployeeAndDate implements schedule.EntryRepository.
func (r *scheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*schedule.Entry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, shift_label, expected_in, expected_out,
			   status_label, created_at, updated_at
		FROM schedule_entries
		WHERE employee_id = $1 AND date = $2
	`

	var entry schedule.Entry
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&entry.ID, &entry.EmployeeID, &entry.Date, &entry.ShiftLabel,
		&entry.ExpectedIn, &entry.ExpectedOut, &entry.StatusLabel,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return &entry, nil
}

// GetByEmployeeRange implements schedule.EntryRepository.
func (r *scheduleRepository) GetByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Entry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, shift_label, expected_in, expected_out,
			   status_label, created_at, updated_at
		FROM schedule_entries
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer rows.Close()

	entries := make([]schedule.Entry, 0)
	for rows.Next() {
		var entry schedule.Entry
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.Date, &entry.ShiftLabel,
			&entry.ExpectedIn, &entry.ExpectedOut, &entry.StatusLabel,
			&entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Correct implements schedule.EntryRepository.
func (r *scheduleRepository) Correct(ctx context.Context, entry schedule.Entry) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_entries
		SET shift_label = $2, expected_in = $3, expected_out = $4,
			status_label = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		entry.ID, entry.ShiftLabel, entry.ExpectedIn, entry.ExpectedOut, entry.StatusLabel,
	)
	if err != nil {
		return fmt.Errorf("failed to correct schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrEntryNotFound
	}
	return nil
}

// isUniqueViolation reports a 23505 unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
