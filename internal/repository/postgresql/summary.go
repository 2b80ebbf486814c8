package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepository{db: db}
}

// Upsert implements attendance.SummaryRepository. One row per
// employee+period; every recompute overwrites it.
func (r *summaryRepository) Upsert(ctx context.Context, summary attendance.Summary) error {
	q := database.GetQuerier(ctx, r.db)

	latenessDetails, err := json.Marshal(summary.LatenessDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal lateness details: %w", err)
	}
	overtimeDetails, err := json.Marshal(summary.OvertimeDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal overtime details: %w", err)
	}

	query := `
		INSERT INTO attendance_summaries (
			employee_id, start_date, end_date,
			days_present, days_sick, days_leave, days_permit,
			days_absent, days_off, days_pending,
			total_lateness_minutes, total_overtime_hours, total_worked_hours,
			paid_scheduled_hours, lateness_details, overtime_details, generated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (employee_id, start_date, end_date) DO UPDATE SET
			days_present = EXCLUDED.days_present,
			days_sick = EXCLUDED.days_sick,
			days_leave = EXCLUDED.days_leave,
			days_permit = EXCLUDED.days_permit,
			days_absent = EXCLUDED.days_absent,
			days_off = EXCLUDED.days_off,
			days_pending = EXCLUDED.days_pending,
			total_lateness_minutes = EXCLUDED.total_lateness_minutes,
			total_overtime_hours = EXCLUDED.total_overtime_hours,
			total_worked_hours = EXCLUDED.total_worked_hours,
			paid_scheduled_hours = EXCLUDED.paid_scheduled_hours,
			lateness_details = EXCLUDED.lateness_details,
			overtime_details = EXCLUDED.overtime_details,
			generated_at = EXCLUDED.generated_at
	`

	_, err = q.Exec(ctx, query,
		summary.EmployeeID, summary.StartDate, summary.EndDate,
		summary.DaysPresent, summary.DaysSick, summary.DaysLeave, summary.DaysPermit,
		summary.DaysAbsent, summary.DaysOff, summary.DaysPending,
		summary.TotalLatenessMinutes, summary.TotalOvertimeHours, summary.TotalWorkedHours,
		summary.PaidScheduledHours, latenessDetails, overtimeDetails, summary.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert summary: %w", err)
	}
	return nil
}

// GetByEmployeePeriod implements attendance.SummaryRepository.
func (r *summaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, start_date, end_date,
			   days_present, days_sick, days_leave, days_permit,
			   days_absent, days_off, days_pending,
			   total_lateness_minutes, total_overtime_hours, total_worked_hours,
			   paid_scheduled_hours, lateness_details, overtime_details, generated_at
		FROM attendance_summaries
		WHERE employee_id = $1 AND start_date = $2 AND end_date = $3
	`

	var summary attendance.Summary
	var latenessDetails, overtimeDetails []byte
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(
		&summary.EmployeeID, &summary.StartDate, &summary.EndDate,
		&summary.DaysPresent, &summary.DaysSick, &summary.DaysLeave, &summary.DaysPermit,
		&summary.DaysAbsent, &summary.DaysOff, &summary.DaysPending,
		&summary.TotalLatenessMinutes, &summary.TotalOvertimeHours, &summary.TotalWorkedHours,
		&summary.PaidScheduledHours, &latenessDetails, &overtimeDetails, &summary.GeneratedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, fmt.Errorf("failed to get summary: %w", err)
	}

	if err := json.Unmarshal(latenessDetails, &summary.LatenessDetails); err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to unmarshal lateness details: %w", err)
	}
	if err := json.Unmarshal(overtimeDetails, &summary.OvertimeDetails); err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to unmarshal overtime details: %w", err)
	}
	return summary, nil
}
