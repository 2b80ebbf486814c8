package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/gajihub/attendance-engine-go/internal/pkg/metrics"
	"github.com/shopspring/decimal"
)

// BuildSummary resolves every day in [start, end] for one employee and
// aggregates the results. It reads only source records, so the result
// is recomputable at any time; no cached state is assumed correct.
// A date without a schedule entry surfaces a MissingScheduleError
// instead of a fabricated default day.
func (s *Service) BuildSummary(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
	start = clock.Midnight(start)
	end = clock.Midnight(end)
	if end.Before(start) {
		return attendance.Summary{}, attendance.ErrInvalidPeriod
	}

	entries, err := s.scheduleRepo.GetByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load schedule entries: %w", err)
	}
	entryByDay := make(map[string]schedule.Entry, len(entries))
	for _, e := range entries {
		entryByDay[dayKey(e.Date)] = e
	}

	punches, err := s.punchRepo.GetByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load punches: %w", err)
	}
	punchByDay := make(map[string]attendance.Punch, len(punches))
	for _, p := range punches {
		punchByDay[dayKey(p.Date)] = p
	}

	requests, err := s.leaveRepo.GetApprovedOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load leave requests: %w", err)
	}

	today := clock.Midnight(s.clock.Now())

	summary := attendance.Summary{
		EmployeeID:         employeeID,
		StartDate:          start,
		EndDate:            end,
		TotalOvertimeHours: decimal.Zero,
		TotalWorkedHours:   decimal.Zero,
		PaidScheduledHours: decimal.Zero,
		LatenessDetails:    make([]attendance.LatenessDetail, 0),
		OvertimeDetails:    make([]attendance.OvertimeDetail, 0),
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry, ok := entryByDay[dayKey(day)]
		if !ok {
			return attendance.Summary{}, &schedule.MissingScheduleError{EmployeeID: employeeID, Date: day}
		}

		var punch *attendance.Punch
		if p, ok := punchByDay[dayKey(day)]; ok {
			punch = &p
		}

		res := attendance.ResolveDay(attendance.DayInput{
			Date:     day,
			Today:    today,
			Schedule: &entry,
			Punch:    punch,
			Requests: requests,
		})
		metrics.DaysResolved.WithLabelValues(string(res.Status)).Inc()

		switch res.Status {
		case attendance.StatusHadir, attendance.StatusTerlambat:
			summary.DaysPresent++
		case attendance.StatusSakit:
			summary.DaysSick++
		case attendance.StatusCuti:
			summary.DaysLeave++
		case attendance.StatusIzin:
			summary.DaysPermit++
		case attendance.StatusAlpha:
			summary.DaysAbsent++
		case attendance.StatusLibur:
			summary.DaysOff++
		case attendance.StatusBelumHadir:
			summary.DaysPending++
		}

		if res.LatenessMinutes > 0 {
			summary.TotalLatenessMinutes += res.LatenessMinutes
			summary.LatenessDetails = append(summary.LatenessDetails, attendance.LatenessDetail{
				Date:    res.Date,
				Minutes: res.LatenessMinutes,
			})
		}

		summary.TotalWorkedHours = summary.TotalWorkedHours.Add(res.WorkedHours)
		if res.Status.Paid() {
			summary.PaidScheduledHours = summary.PaidScheduledHours.Add(entry.ScheduledHours())
		}
	}

	// Overtime is an explicit entitlement from approved requests, never
	// derived from punches.
	overtimes, err := s.overtimeRepo.GetApprovedInRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load overtime requests: %w", err)
	}
	for _, ot := range overtimes {
		summary.TotalOvertimeHours = summary.TotalOvertimeHours.Add(ot.DurationHours)
		summary.OvertimeDetails = append(summary.OvertimeDetails, attendance.OvertimeDetail{
			Date:  clock.Midnight(ot.Date),
			Hours: ot.DurationHours,
		})
	}

	summary.TotalWorkedHours = summary.TotalWorkedHours.Round(2)
	summary.TotalOvertimeHours = summary.TotalOvertimeHours.Round(2)
	summary.PaidScheduledHours = summary.PaidScheduledHours.Round(2)
	summary.GeneratedAt = s.clock.Now()

	return summary, nil
}

// GetSummary recomputes the summary and refreshes the cache row.
func (s *Service) GetSummary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	start, end := req.Period()
	summary, err := s.BuildSummary(ctx, req.EmployeeID, start, end)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to cache summary: %w", err)
	}

	return attendance.ToSummaryResponse(summary), nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
