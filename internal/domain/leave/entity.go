package leave

import (
	"time"
)

// RequestType enumerates the leave/permission request kinds the
// resolver understands.
type RequestType string

const (
	TypeCuti           RequestType = "cuti"
	TypeSakit          RequestType = "sakit"
	TypeIzin           RequestType = "izin"
	TypeIzinTerlambat  RequestType = "izin_terlambat"
	TypeIzinPulangAwal RequestType = "izin_pulang_awal"
	TypeIzinTidakMasuk RequestType = "izin_tidak_masuk"
)

// ValidTypes lists every accepted request type.
var ValidTypes = []RequestType{
	TypeCuti, TypeSakit, TypeIzin,
	TypeIzinTerlambat, TypeIzinPulangAwal, TypeIzinTidakMasuk,
}

func (t RequestType) Valid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DeductsQuota reports whether approving this type debits the annual
// leave quota. Only cuti consumes quota days.
func (t RequestType) DeductsQuota() bool {
	return t == TypeCuti
}

// FullDayAbsence reports whether the type keeps the employee away for
// the whole day. Late and early-leave permissions still punch in.
func (t RequestType) FullDayAbsence() bool {
	switch t {
	case TypeCuti, TypeSakit, TypeIzin, TypeIzinTidakMasuk:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// allowedTransitions is the closed transition graph for requests.
// Pending is decided exactly once; an approved request can only be
// cancelled, which credits the quota back.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

// CanTransition reports whether moving from s to target is allowed.
func (s RequestStatus) CanTransition(target RequestStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Request is a leave/sick/permission application over a date range.
// Single-day requests have StartDate == EndDate.
type Request struct {
	ID         string
	EmployeeID string
	Type       RequestType
	StartDate  time.Time
	EndDate    time.Time
	DayCount   int
	Reason     string

	Status     RequestStatus
	ApproverID *string
	DecidedAt  *time.Time

	CancelledBy *string
	CancelledAt *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether the request's range contains the date.
// Comparison is by calendar day.
func (r Request) Covers(date time.Time) bool {
	d := toDay(date)
	return !d.Before(toDay(r.StartDate)) && !d.After(toDay(r.EndDate))
}

// Days returns the inclusive day count of the range.
func (r Request) Days() int {
	start := toDay(r.StartDate)
	end := toDay(r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Quota is one employee's annual leave quota ledger row.
// Remaining is maintained as Granted - Used at all times; it is never
// written directly by callers.
type Quota struct {
	ID         string
	EmployeeID string
	Year       int
	Granted    int
	Used       int
	Remaining  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Debit consumes days from the quota. It fails with QuotaExceededError
// when the balance would go negative; the ledger is never auto-corrected.
func (q *Quota) Debit(days int) error {
	if q.Used+days > q.Granted {
		return &QuotaExceededError{
			EmployeeID: q.EmployeeID,
			Year:       q.Year,
			Requested:  days,
			Remaining:  q.Remaining,
		}
	}
	q.Used += days
	q.Remaining = q.Granted - q.Used
	return nil
}

// Credit returns days to the quota, clamping Used at zero.
func (q *Quota) Credit(days int) {
	q.Used -= days
	if q.Used < 0 {
		q.Used = 0
	}
	q.Remaining = q.Granted - q.Used
}
