package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/overtime"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	requests []overtime.Request
}

func (f *fakeRequestRepo) Create(_ context.Context, req overtime.Request) (overtime.Request, error) {
	req.ID = uuid.NewString()
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (overtime.Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return overtime.Request{}, overtime.ErrRequestNotFound
}

func (f *fakeRequestRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*overtime.Request, error) {
	for i := range f.requests {
		r := f.requests[i]
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) GetApprovedInRange(_ context.Context, employeeID string, start, end time.Time) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == overtime.StatusApproved &&
			!r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, req overtime.Request) error {
	for i := range f.requests {
		if f.requests[i].ID == req.ID {
			f.requests[i] = req
			return nil
		}
	}
	return overtime.ErrRequestNotFound
}

func newTestService() (*Service, *fakeRequestRepo) {
	repo := &fakeRequestRepo{}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return NewService(repo, clock.Fixed(now)), repo
}

func TestSubmitComputesDuration(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Submit(context.Background(), overtime.SubmitRequestRequest{
		EmployeeID: "emp-001",
		Date:       "2025-06-02",
		StartTime:  "18:00",
		EndTime:    "20:30",
		Reason:     "release deployment",
	})
	require.NoError(t, err)
	require.True(t, resp.DurationHours.Equal(decimal.NewFromFloat(2.5)), "got %s", resp.DurationHours)
	require.Equal(t, string(overtime.StatusPending), resp.Status)
}

func TestSubmitOvernightSpan(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Submit(context.Background(), overtime.SubmitRequestRequest{
		EmployeeID: "emp-001",
		Date:       "2025-06-02",
		StartTime:  "22:00",
		EndTime:    "01:00",
	})
	require.NoError(t, err)
	require.True(t, resp.DurationHours.Equal(decimal.NewFromInt(3)), "got %s", resp.DurationHours)
}

func TestSubmitZeroSpanRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Submit(context.Background(), overtime.SubmitRequestRequest{
		EmployeeID: "emp-001",
		Date:       "2025-06-02",
		StartTime:  "18:00",
		EndTime:    "18:00",
	})
	require.Error(t, err)
	require.True(t, overtime.IsNegativeDuration(err))
}

func TestSubmitDuplicateDateRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := overtime.SubmitRequestRequest{
		EmployeeID: "emp-001",
		Date:       "2025-06-02",
		StartTime:  "18:00",
		EndTime:    "19:00",
	}
	_, err := svc.Submit(ctx, req)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, req)
	require.ErrorIs(t, err, overtime.ErrDuplicateRequest)
}

func TestDecideOnce(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Submit(ctx, overtime.SubmitRequestRequest{
		EmployeeID: "emp-001",
		Date:       "2025-06-02",
		StartTime:  "18:00",
		EndTime:    "19:00",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, resp.ID, "mgr-001")
	require.NoError(t, err)
	require.Equal(t, string(overtime.StatusApproved), approved.Status)

	_, err = svc.Reject(ctx, resp.ID, "mgr-001")
	require.ErrorIs(t, err, overtime.ErrRequestAlreadyProcessed)
}
