package attendance

import (
	"math"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// DayInput is everything ResolveDay needs for one employee-day.
// Requests may be any of the employee's requests; only approved ones
// covering Date are considered.
// Today is the reference day used to classify past vs pending; callers
// obtain it from a clock so resolution stays deterministic.
type DayInput struct {
	Date     time.Time
	Today    time.Time
	Schedule *schedule.Entry
	Punch    *Punch
	Requests []leave.Request
}

// ResolveDay resolves a single day to exactly one status plus derived
// metrics. It is pure: identical inputs always produce identical
// outputs.
func ResolveDay(in DayInput) DayResolution {
	res := DayResolution{
		Date:        toDay(in.Date),
		WorkedHours: decimal.Zero,
	}

	if in.Punch != nil && in.Punch.ActualIn != nil {
		res.Status, res.LatenessMinutes = resolvePresence(in)
		res.WorkedHours = workedHours(*in.Punch)
		return res
	}

	res.Status = resolveAbsence(in)
	return res
}

// resolveAbsence applies the no-punch precedence: approved requests
// first, then the schedule's declared label, then past vs pending.
func resolveAbsence(in DayInput) DayStatus {
	if hasApproved(in.Requests, in.Date, leave.TypeIzinTidakMasuk) {
		return StatusIzin
	}
	if hasApproved(in.Requests, in.Date, leave.TypeCuti) {
		return StatusCuti
	}
	if hasApproved(in.Requests, in.Date, leave.TypeSakit) {
		return StatusSakit
	}
	if hasApproved(in.Requests, in.Date, leave.TypeIzin) {
		return StatusIzin
	}

	if in.Schedule != nil {
		switch {
		case in.Schedule.HasLabel(schedule.LabelLibur):
			return StatusLibur
		case in.Schedule.HasLabel(schedule.LabelSakit):
			return StatusSakit
		case in.Schedule.HasLabel(schedule.LabelIzin):
			return StatusIzin
		}
	}

	if toDay(in.Date).Before(toDay(in.Today)) {
		return StatusAlpha
	}
	return StatusBelumHadir
}

// resolvePresence classifies a punched day as hadir or terlambat. An
// approved izin_terlambat zeroes the lateness regardless of punch time.
func resolvePresence(in DayInput) (DayStatus, int) {
	if in.Schedule == nil {
		return StatusHadir, 0
	}

	actualIn := *in.Punch.ActualIn
	expectedIn := onDay(in.Schedule.Date, in.Schedule.ExpectedIn)
	if !actualIn.After(expectedIn) {
		return StatusHadir, 0
	}

	if hasApproved(in.Requests, in.Date, leave.TypeIzinTerlambat) {
		return StatusHadir, 0
	}

	lateness := int(math.Floor(actualIn.Sub(expectedIn).Minutes()))
	if lateness < 0 {
		lateness = 0
	}
	return StatusTerlambat, lateness
}

// workedHours computes (actual-out - actual-in) in hours, rounded to 2
// decimals. Overnight shifts gain 24h; a missing check-out yields 0.
func workedHours(p Punch) decimal.Decimal {
	if p.ActualIn == nil || p.ActualOut == nil {
		return decimal.Zero
	}
	out := *p.ActualOut
	if out.Before(*p.ActualIn) {
		out = out.Add(24 * time.Hour)
	}
	minutes := out.Sub(*p.ActualIn).Minutes()
	if minutes < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)
}

func hasApproved(requests []leave.Request, date time.Time, t leave.RequestType) bool {
	for _, r := range requests {
		if r.Type == t && r.Status == leave.StatusApproved && r.Covers(date) {
			return true
		}
	}
	return false
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// onDay anchors the clock part of ts on the calendar day of date.
func onDay(date, ts time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		ts.Hour(), ts.Minute(), ts.Second(), 0, ts.Location())
}
