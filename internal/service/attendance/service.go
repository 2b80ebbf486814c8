package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/domain/overtime"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
)

// Service resolves attendance: it records punches and computes period
// summaries from source records. Summaries are cached but always
// recomputable.
type Service struct {
	scheduleRepo schedule.EntryRepository
	punchRepo    attendance.PunchRepository
	leaveRepo    leave.RequestRepository
	overtimeRepo overtime.RequestRepository
	summaryRepo  attendance.SummaryRepository
	clock        clock.Clock
}

func NewService(
	scheduleRepo schedule.EntryRepository,
	punchRepo attendance.PunchRepository,
	leaveRepo leave.RequestRepository,
	overtimeRepo overtime.RequestRepository,
	summaryRepo attendance.SummaryRepository,
	clk clock.Clock,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		punchRepo:    punchRepo,
		leaveRepo:    leaveRepo,
		overtimeRepo: overtimeRepo,
		summaryRepo:  summaryRepo,
		clock:        clk,
	}
}

// CreateScheduleEntry places one roster entry. One entry per employee
// per day; a second insert for the same day is a conflict.
func (s *Service) CreateScheduleEntry(ctx context.Context, req schedule.CreateEntryRequest) (schedule.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.EntryResponse{}, err
	}

	created, err := s.scheduleRepo.Create(ctx, req.Entry())
	if err != nil {
		if err == schedule.ErrEntryExists {
			return schedule.EntryResponse{}, err
		}
		return schedule.EntryResponse{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return schedule.ToEntryResponse(created), nil
}

// CorrectScheduleEntry rewrites an entry's shift and expected times.
// Summaries computed from the old entry stay stale until recomputed.
func (s *Service) CorrectScheduleEntry(ctx context.Context, req schedule.CorrectEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	in, _ := time.Parse("15:04", req.ExpectedIn)
	out, _ := time.Parse("15:04", req.ExpectedOut)
	entry := schedule.Entry{
		ID:          req.EntryID,
		ShiftLabel:  req.ShiftLabel,
		ExpectedIn:  in,
		ExpectedOut: out,
		StatusLabel: req.StatusLabel,
	}
	if err := s.scheduleRepo.Correct(ctx, entry); err != nil {
		if err == schedule.ErrEntryNotFound {
			return err
		}
		return fmt.Errorf("failed to correct schedule entry: %w", err)
	}
	return nil
}

// GetSchedule lists an employee's roster entries for [start, end].
func (s *Service) GetSchedule(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.EntryResponse, error) {
	entries, err := s.scheduleRepo.GetByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	responses := make([]schedule.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, schedule.ToEntryResponse(entry))
	}
	return responses, nil
}

// ClockIn records a check-in for today. The schedule entry must exist;
// check-in earlier than one hour before the expected time is refused.
func (s *Service) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	now := s.clock.Now()
	today := clock.Midnight(now)

	entry, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	if entry == nil {
		return attendance.PunchResponse{}, attendance.ErrNoScheduleToday
	}

	covering, err := s.leaveRepo.GetApprovedCovering(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to check leave requests: %w", err)
	}
	for _, r := range covering {
		if r.Type.FullDayAbsence() {
			return attendance.PunchResponse{}, attendance.ErrOnApprovedLeave
		}
	}

	existing, err := s.punchRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to check existing punch: %w", err)
	}
	if existing != nil && existing.ActualIn != nil {
		return attendance.PunchResponse{}, attendance.ErrAlreadyCheckedIn
	}

	expectedIn := time.Date(today.Year(), today.Month(), today.Day(),
		entry.ExpectedIn.Hour(), entry.ExpectedIn.Minute(), 0, 0, now.Location())
	if now.Before(expectedIn.Add(-1 * time.Hour)) {
		return attendance.PunchResponse{}, attendance.ErrTooEarlyToCheckIn
	}

	punch := attendance.Punch{
		EmployeeID: req.EmployeeID,
		Date:       today,
		ActualIn:   &now,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	created, err := s.punchRepo.Create(ctx, punch)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return attendance.ToPunchResponse(created), nil
}

// ClockOut records the check-out mutation on today's punch.
func (s *Service) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	now := s.clock.Now()
	today := clock.Midnight(now)

	punch, err := s.punchRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to get punch: %w", err)
	}
	if punch == nil || punch.ActualIn == nil {
		// Overnight shifts check out on the calendar day after check-in.
		yesterday := today.AddDate(0, 0, -1)
		punch, err = s.punchRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, yesterday)
		if err != nil {
			return attendance.PunchResponse{}, fmt.Errorf("failed to get punch: %w", err)
		}
		if punch == nil || punch.ActualIn == nil {
			return attendance.PunchResponse{}, attendance.ErrNotCheckedIn
		}
	}
	if punch.ActualOut != nil {
		return attendance.PunchResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if err := s.punchRepo.SetClockOut(ctx, punch.ID, now, req.Latitude, req.Longitude); err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to set clock-out: %w", err)
	}

	punch.ActualOut = &now
	return attendance.ToPunchResponse(*punch), nil
}
