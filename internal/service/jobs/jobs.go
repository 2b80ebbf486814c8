package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/employee"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/gajihub/attendance-engine-go/internal/pkg/cron"
	attendancesvc "github.com/gajihub/attendance-engine-go/internal/service/attendance"
	leavesvc "github.com/gajihub/attendance-engine-go/internal/service/leave"
)

// Jobs holds the engine's scheduled work: the nightly summary refresh
// that settles belum_hadir days into alpha, and the yearly leave grant.
type Jobs struct {
	attendanceService *attendancesvc.Service
	leaveService      *leavesvc.Service
	employeeRepo      employee.EmployeeRepository
	settingsRepo      payroll.SettingsRepository
	clock             clock.Clock
	logger            *slog.Logger
}

func New(
	attendanceService *attendancesvc.Service,
	leaveService *leavesvc.Service,
	employeeRepo employee.EmployeeRepository,
	settingsRepo payroll.SettingsRepository,
	clk clock.Clock,
	logger *slog.Logger,
) *Jobs {
	return &Jobs{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		employeeRepo:      employeeRepo,
		settingsRepo:      settingsRepo,
		clock:             clk,
		logger:            logger,
	}
}

// Register adds both jobs to the scheduler.
func (j *Jobs) Register(scheduler *cron.Scheduler) {
	scheduler.AddJob("refresh-daily-summaries", 24*time.Hour, j.RefreshDailySummaries)
	scheduler.AddJob("grant-yearly-quotas", 24*time.Hour, j.GrantYearlyQuotas)
}

// RefreshDailySummaries recomputes every active employee's
// month-to-date summary. Days whose shift has ended with no punch and
// no approved request settle from belum_hadir to alpha on this pass.
func (j *Jobs) RefreshDailySummaries(ctx context.Context) error {
	now := j.clock.Now()
	yesterday := clock.Midnight(now).AddDate(0, 0, -1)
	monthStart := time.Date(yesterday.Year(), yesterday.Month(), 1, 0, 0, 0, 0, yesterday.Location())
	if yesterday.Before(monthStart) {
		return nil
	}

	employees, err := j.employeeRepo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var failed int
	for _, emp := range employees {
		req := attendance.SummaryRequest{
			EmployeeID: emp.ID,
			StartDate:  monthStart.Format("2006-01-02"),
			EndDate:    yesterday.Format("2006-01-02"),
		}
		if _, err := j.attendanceService.GetSummary(ctx, req); err != nil {
			// Roster gaps are expected for new hires; keep going.
			failed++
			j.logger.WarnContext(ctx, "summary refresh failed",
				"employee_id", emp.ID, "error", err)
		}
	}

	j.logger.InfoContext(ctx, "daily summary refresh finished",
		"employees", len(employees), "failed", failed)
	return nil
}

// GrantYearlyQuotas creates the current year's leave quota rows for
// active employees that have none. Safe to run every night.
func (j *Jobs) GrantYearlyQuotas(ctx context.Context) error {
	settings, err := j.settingsRepo.Get(ctx)
	if err != nil {
		if err == payroll.ErrSettingsNotFound {
			j.logger.WarnContext(ctx, "yearly quota grant skipped, settings not configured")
			return nil
		}
		return fmt.Errorf("failed to load settings: %w", err)
	}

	year := j.clock.Now().Year()
	granted, err := j.leaveService.GrantYearly(ctx, year, settings.DefaultAnnualLeaveDays)
	if err != nil {
		return fmt.Errorf("failed to grant yearly quotas: %w", err)
	}
	if granted > 0 {
		j.logger.InfoContext(ctx, "yearly leave quotas granted",
			"year", year, "employees", granted)
	}
	return nil
}
