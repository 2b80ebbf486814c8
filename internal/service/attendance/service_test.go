package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/stretchr/testify/require"
)

func TestClockInRequiresSchedule(t *testing.T) {
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: testEmployeeID})
	require.ErrorIs(t, err, attendance.ErrNoScheduleToday)
}

func TestClockInTwiceRejected(t *testing.T) {
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	svc, scheduleRepo, _, _, _ := newTestService(now)
	ctx := context.Background()

	_, err := scheduleRepo.Create(ctx, workday(testEmployeeID, now))
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: testEmployeeID})
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestClockInTooEarly(t *testing.T) {
	// Shift starts 08:00; 06:30 is more than an hour early.
	now := time.Date(2025, 3, 3, 6, 30, 0, 0, time.UTC)
	svc, scheduleRepo, _, _, _ := newTestService(now)
	ctx := context.Background()

	_, err := scheduleRepo.Create(ctx, workday(testEmployeeID, now))
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: testEmployeeID})
	require.ErrorIs(t, err, attendance.ErrTooEarlyToCheckIn)
}

func TestClockInRefusedDuringApprovedLeave(t *testing.T) {
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	svc, scheduleRepo, _, leaveRepo, _ := newTestService(now)
	ctx := context.Background()

	_, err := scheduleRepo.Create(ctx, workday(testEmployeeID, now))
	require.NoError(t, err)

	_, err = leaveRepo.Create(ctx, leave.Request{
		EmployeeID: testEmployeeID,
		Type:       leave.TypeCuti,
		StartDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
	})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: testEmployeeID})
	require.ErrorIs(t, err, attendance.ErrOnApprovedLeave)
}

func TestClockInAllowedWithLatePermission(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	svc, scheduleRepo, _, leaveRepo, _ := newTestService(now)
	ctx := context.Background()

	_, err := scheduleRepo.Create(ctx, workday(testEmployeeID, now))
	require.NoError(t, err)

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err = leaveRepo.Create(ctx, leave.Request{
		EmployeeID: testEmployeeID,
		Type:       leave.TypeIzinTerlambat,
		StartDate:  day,
		EndDate:    day,
		Status:     leave.StatusApproved,
	})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	now := time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: testEmployeeID})
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestClockOutClosesYesterdaysOvernightPunch(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 3, 3, 22, 0, 0, 0, time.UTC)

	svc, _, punchRepo, _, _ := newTestService(time.Date(2025, 3, 4, 6, 5, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := punchRepo.Create(ctx, attendance.Punch{
		EmployeeID: testEmployeeID,
		Date:       day,
		ActualIn:   &checkIn,
	})
	require.NoError(t, err)

	resp, err := svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	require.NotNil(t, resp.ActualOut)

	stored, err := punchRepo.GetByEmployeeAndDate(ctx, testEmployeeID, day)
	require.NoError(t, err)
	require.NotNil(t, stored.ActualOut)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: testEmployeeID})
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}
