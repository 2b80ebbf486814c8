package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}

// Create implements attendance.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_punches (
			employee_id, date, actual_in, actual_out, latitude, longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		punch.EmployeeID,
		punch.Date,
		punch.ActualIn,
		punch.ActualOut,
		punch.Latitude,
		punch.Longitude,
	).Scan(&punch.ID, &punch.CreatedAt, &punch.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Punch{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}
	return punch, nil
}

// GetByEmployeeAndDate implements attendance.PunchRepository.
func (r *punchRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Punch, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, actual_in, actual_out, latitude, longitude,
			   created_at, updated_at
		FROM attendance_punches
		WHERE employee_id = $1 AND date = $2
	`

	var punch attendance.Punch
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&punch.ID, &punch.EmployeeID, &punch.Date, &punch.ActualIn, &punch.ActualOut,
		&punch.Latitude, &punch.Longitude, &punch.CreatedAt, &punch.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get punch: %w", err)
	}
	return &punch, nil
}

// GetByEmployeeRange implements attendance.PunchRepository.
func (r *punchRepository) GetByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Punch, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, actual_in, actual_out, latitude, longitude,
			   created_at, updated_at
		FROM attendance_punches
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	punches := make([]attendance.Punch, 0)
	for rows.Next() {
		var punch attendance.Punch
		if err := rows.Scan(
			&punch.ID, &punch.EmployeeID, &punch.Date, &punch.ActualIn, &punch.ActualOut,
			&punch.Latitude, &punch.Longitude, &punch.CreatedAt, &punch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		punches = append(punches, punch)
	}
	return punches, rows.Err()
}

// SetClockOut implements attendance.PunchRepository.
func (r *punchRepository) SetClockOut(ctx context.Context, punchID string, out time.Time, lat, lon *float64) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_punches
		SET actual_out = $2,
			latitude = COALESCE($3, latitude),
			longitude = COALESCE($4, longitude),
			updated_at = NOW()
		WHERE id = $1 AND actual_out IS NULL
	`

	tag, err := q.Exec(ctx, query, punchID, out, lat, lon)
	if err != nil {
		return fmt.Errorf("failed to set clock-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}
