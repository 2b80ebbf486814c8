package attendance

import (
	"testing"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDay   = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

func scheduleAt(inHour, inMin, outHour, outMin int) *schedule.Entry {
	return &schedule.Entry{
		ID:          "sch-1",
		EmployeeID:  "emp-1",
		Date:        testDay,
		ShiftLabel:  "Pagi",
		ExpectedIn:  time.Date(2025, 3, 10, inHour, inMin, 0, 0, time.UTC),
		ExpectedOut: time.Date(2025, 3, 10, outHour, outMin, 0, 0, time.UTC),
	}
}

func labeledSchedule(label string) *schedule.Entry {
	e := scheduleAt(8, 0, 17, 0)
	e.StatusLabel = &label
	return e
}

func punchAt(in time.Time) *Punch {
	return &Punch{ID: "p-1", EmployeeID: "emp-1", Date: testDay, ActualIn: &in}
}

func approvedRequest(t leave.RequestType) leave.Request {
	return leave.Request{
		ID:         "req-1",
		EmployeeID: "emp-1",
		Type:       t,
		StartDate:  testDay,
		EndDate:    testDay,
		Status:     leave.StatusApproved,
	}
}

func TestResolveDay_LatePunchWithoutPermission(t *testing.T) {
	// Scenario A: schedule 08:00-17:00, punch-in 08:20, no permission.
	in := DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(8, 0, 17, 0),
		Punch:    punchAt(time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)),
	}

	res := ResolveDay(in)
	assert.Equal(t, StatusTerlambat, res.Status)
	assert.Equal(t, 20, res.LatenessMinutes)
}

func TestResolveDay_LatePunchWithApprovedPermission(t *testing.T) {
	// Scenario B: same punch, approved izin_terlambat for the date.
	in := DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(8, 0, 17, 0),
		Punch:    punchAt(time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)),
		Requests: []leave.Request{approvedRequest(leave.TypeIzinTerlambat)},
	}

	res := ResolveDay(in)
	assert.Equal(t, StatusHadir, res.Status)
	assert.Equal(t, 0, res.LatenessMinutes)
}

func TestResolveDay_NoPunchPastDate(t *testing.T) {
	// Scenario C: no punch, the date is yesterday, no requests.
	in := DayInput{
		Date:     testDay,
		Today:    testDay.AddDate(0, 0, 1),
		Schedule: scheduleAt(8, 0, 17, 0),
	}

	res := ResolveDay(in)
	assert.Equal(t, StatusAlpha, res.Status)
}

func TestResolveDay_NoPunchApprovedCuti(t *testing.T) {
	// Scenario D: no punch, approved cuti covering today.
	in := DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(8, 0, 17, 0),
		Requests: []leave.Request{approvedRequest(leave.TypeCuti)},
	}

	res := ResolveDay(in)
	assert.Equal(t, StatusCuti, res.Status)
	assert.True(t, res.Status.Paid())
}

func TestResolveDay_AbsencePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		schedule *schedule.Entry
		requests []leave.Request
		today    time.Time
		want     DayStatus
	}{
		{
			name:     "izin_tidak_masuk wins over cuti",
			schedule: scheduleAt(8, 0, 17, 0),
			requests: []leave.Request{approvedRequest(leave.TypeCuti), approvedRequest(leave.TypeIzinTidakMasuk)},
			today:    testToday,
			want:     StatusIzin,
		},
		{
			name:     "cuti wins over libur label",
			schedule: labeledSchedule("Libur"),
			requests: []leave.Request{approvedRequest(leave.TypeCuti)},
			today:    testToday,
			want:     StatusCuti,
		},
		{
			name:     "libur label",
			schedule: labeledSchedule("Libur"),
			today:    testToday,
			want:     StatusLibur,
		},
		{
			name:     "libur label is case-insensitive",
			schedule: labeledSchedule("libur"),
			today:    testToday,
			want:     StatusLibur,
		},
		{
			name:     "sakit label",
			schedule: labeledSchedule("Sakit"),
			today:    testToday,
			want:     StatusSakit,
		},
		{
			name:     "izin label",
			schedule: labeledSchedule("Izin"),
			today:    testToday,
			want:     StatusIzin,
		},
		{
			name:     "approved sakit request beats plain schedule",
			schedule: scheduleAt(8, 0, 17, 0),
			requests: []leave.Request{approvedRequest(leave.TypeSakit)},
			today:    testDay.AddDate(0, 0, 3),
			want:     StatusSakit,
		},
		{
			name:     "pending request does not count",
			schedule: scheduleAt(8, 0, 17, 0),
			requests: []leave.Request{{Type: leave.TypeCuti, StartDate: testDay, EndDate: testDay, Status: leave.StatusPending}},
			today:    testToday,
			want:     StatusBelumHadir,
		},
		{
			name:     "today without punch stays pending",
			schedule: scheduleAt(8, 0, 17, 0),
			today:    testToday,
			want:     StatusBelumHadir,
		},
		{
			name:  "no schedule, past date",
			today: testDay.AddDate(0, 0, 2),
			want:  StatusAlpha,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := ResolveDay(DayInput{
				Date:     testDay,
				Today:    c.today,
				Schedule: c.schedule,
				Requests: c.requests,
			})
			assert.Equal(t, c.want, res.Status)
			assert.GreaterOrEqual(t, res.LatenessMinutes, 0)
		})
	}
}

func TestResolveDay_WorkedHours(t *testing.T) {
	in := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	p := punchAt(in)
	p.ActualOut = &out

	res := ResolveDay(DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(8, 0, 17, 0),
		Punch:    p,
	})
	assert.True(t, res.WorkedHours.Equal(decimal.NewFromInt(9)), "got %s", res.WorkedHours)
}

func TestResolveDay_OvernightWorkedHours(t *testing.T) {
	// Clock-out before clock-in spans midnight: 22:00 -> 06:00 is 8h.
	in := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	p := punchAt(in)
	p.ActualOut = &out

	res := ResolveDay(DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(22, 0, 6, 0),
		Punch:    p,
	})
	assert.True(t, res.WorkedHours.Equal(decimal.NewFromInt(8)), "got %s", res.WorkedHours)
	assert.Equal(t, StatusHadir, res.Status)
}

func TestResolveDay_MissingClockOutYieldsZeroHours(t *testing.T) {
	res := ResolveDay(DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(8, 0, 17, 0),
		Punch:    punchAt(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)),
	})
	assert.True(t, res.WorkedHours.IsZero())
	assert.Equal(t, StatusHadir, res.Status)
}

func TestResolveDay_PunchWithoutScheduleIsPresent(t *testing.T) {
	res := ResolveDay(DayInput{
		Date:  testDay,
		Today: testToday,
		Punch: punchAt(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)),
	})
	assert.Equal(t, StatusHadir, res.Status)
	assert.Equal(t, 0, res.LatenessMinutes)
}

func TestResolveDay_Idempotent(t *testing.T) {
	in := DayInput{
		Date:     testDay,
		Today:    testToday,
		Schedule: scheduleAt(8, 0, 17, 0),
		Punch:    punchAt(time.Date(2025, 3, 10, 8, 45, 0, 0, time.UTC)),
	}

	first := ResolveDay(in)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ResolveDay(in))
	}
}

func TestScheduledHours_Overnight(t *testing.T) {
	e := scheduleAt(22, 0, 6, 0)
	assert.True(t, e.ScheduledHours().Equal(decimal.NewFromInt(8)), "got %s", e.ScheduledHours())
}
