package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Punch holds one employee's raw clock events for one date. A row is
// created on check-in and mutated exactly once on check-out.
type Punch struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ActualIn   *time.Time
	ActualOut  *time.Time
	Latitude   *float64
	Longitude  *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayStatus is the closed set of resolved attendance statuses.
type DayStatus string

const (
	StatusHadir      DayStatus = "hadir"
	StatusTerlambat  DayStatus = "terlambat"
	StatusSakit      DayStatus = "sakit"
	StatusIzin       DayStatus = "izin"
	StatusCuti       DayStatus = "cuti"
	StatusLibur      DayStatus = "libur"
	StatusAlpha      DayStatus = "alpha"
	StatusBelumHadir DayStatus = "belum_hadir"
)

// Paid reports whether a day with this status counts at full scheduled
// hours for base pay. Izin is excused but unpaid; alpha and pending
// days contribute nothing.
func (s DayStatus) Paid() bool {
	switch s {
	case StatusHadir, StatusTerlambat, StatusCuti, StatusSakit, StatusLibur:
		return true
	}
	return false
}

// DayResolution is the resolver's output for a single day.
type DayResolution struct {
	Date            time.Time
	Status          DayStatus
	LatenessMinutes int
	WorkedHours     decimal.Decimal
}

// LatenessDetail itemizes one late day inside a summary.
type LatenessDetail struct {
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
}

// OvertimeDetail itemizes one approved overtime day inside a summary.
type OvertimeDetail struct {
	Date  time.Time       `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

// Summary aggregates resolved days over a period. It is derived data:
// persisted rows are a cache and every recompute overwrites them.
type Summary struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time

	DaysPresent int
	DaysSick    int
	DaysLeave   int
	DaysPermit  int
	DaysAbsent  int
	DaysOff     int
	DaysPending int

	TotalLatenessMinutes int
	TotalOvertimeHours   decimal.Decimal
	TotalWorkedHours     decimal.Decimal

	// PaidScheduledHours is the sum of scheduled hours over days whose
	// status is paid; the payroll calculator turns it into base pay.
	PaidScheduledHours decimal.Decimal

	LatenessDetails []LatenessDetail
	OvertimeDetails []OvertimeDetail

	GeneratedAt time.Time
}

// TotalDays returns the sum of all per-status day counts. It always
// equals the inclusive length of the summarized range.
func (s Summary) TotalDays() int {
	return s.DaysPresent + s.DaysSick + s.DaysLeave + s.DaysPermit +
		s.DaysAbsent + s.DaysOff + s.DaysPending
}
