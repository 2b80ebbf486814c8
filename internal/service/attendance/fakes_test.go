package attendance

import (
	"context"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/domain/overtime"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/google/uuid"
)

// In-memory fakes so resolution logic is testable without a database.

type fakeScheduleRepo struct {
	entries []schedule.Entry
}

func (f *fakeScheduleRepo) Create(_ context.Context, entry schedule.Entry) (schedule.Entry, error) {
	entry.ID = uuid.NewString()
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeScheduleRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*schedule.Entry, error) {
	for i := range f.entries {
		e := f.entries[i]
		if e.EmployeeID == employeeID && clock.SameDay(e.Date, date) {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) GetByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]schedule.Entry, error) {
	var out []schedule.Entry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Correct(_ context.Context, entry schedule.Entry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = entry
			return nil
		}
	}
	return schedule.ErrEntryNotFound
}

type fakePunchRepo struct {
	punches []attendance.Punch
}

func (f *fakePunchRepo) Create(_ context.Context, punch attendance.Punch) (attendance.Punch, error) {
	punch.ID = uuid.NewString()
	f.punches = append(f.punches, punch)
	return punch, nil
}

func (f *fakePunchRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Punch, error) {
	for i := range f.punches {
		p := f.punches[i]
		if p.EmployeeID == employeeID && clock.SameDay(p.Date, date) {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePunchRepo) GetByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, p := range f.punches {
		if p.EmployeeID == employeeID && !p.Date.Before(start) && !p.Date.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePunchRepo) SetClockOut(_ context.Context, punchID string, out time.Time, lat, lon *float64) error {
	for i := range f.punches {
		if f.punches[i].ID == punchID {
			f.punches[i].ActualOut = &out
			f.punches[i].Latitude = lat
			f.punches[i].Longitude = lon
			return nil
		}
	}
	return attendance.ErrPunchNotFound
}

type fakeLeaveRepo struct {
	requests []leave.Request
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	req.ID = uuid.NewString()
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) GetApprovedCovering(_ context.Context, employeeID string, date time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == leave.StatusApproved && r.Covers(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) GetApprovedOverlapping(_ context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == leave.StatusApproved &&
			!r.EndDate.Before(start) && !r.StartDate.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, req leave.Request) error {
	for i := range f.requests {
		if f.requests[i].ID == req.ID {
			f.requests[i] = req
			return nil
		}
	}
	return leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string, year int) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.StartDate.Year() == year {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOvertimeRepo struct {
	requests []overtime.Request
}

func (f *fakeOvertimeRepo) Create(_ context.Context, req overtime.Request) (overtime.Request, error) {
	req.ID = uuid.NewString()
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeOvertimeRepo) GetByID(_ context.Context, id string) (overtime.Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return overtime.Request{}, overtime.ErrRequestNotFound
}

func (f *fakeOvertimeRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*overtime.Request, error) {
	for i := range f.requests {
		r := f.requests[i]
		if r.EmployeeID == employeeID && clock.SameDay(r.Date, date) {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeOvertimeRepo) GetApprovedInRange(_ context.Context, employeeID string, start, end time.Time) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == overtime.StatusApproved &&
			!r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOvertimeRepo) UpdateStatus(_ context.Context, req overtime.Request) error {
	for i := range f.requests {
		if f.requests[i].ID == req.ID {
			f.requests[i] = req
			return nil
		}
	}
	return overtime.ErrRequestNotFound
}

type fakeSummaryRepo struct {
	summaries map[string]attendance.Summary
}

func (f *fakeSummaryRepo) Upsert(_ context.Context, summary attendance.Summary) error {
	if f.summaries == nil {
		f.summaries = make(map[string]attendance.Summary)
	}
	key := summary.EmployeeID + summary.StartDate.Format("2006-01-02") + summary.EndDate.Format("2006-01-02")
	f.summaries[key] = summary
	return nil
}

func (f *fakeSummaryRepo) GetByEmployeePeriod(_ context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
	key := employeeID + start.Format("2006-01-02") + end.Format("2006-01-02")
	if s, ok := f.summaries[key]; ok {
		return s, nil
	}
	return attendance.Summary{}, attendance.ErrSummaryNotFound
}
