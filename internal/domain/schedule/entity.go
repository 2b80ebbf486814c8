package schedule

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one employee's expected workday: the shift, the expected
// clock times, and an optional declared status label set by scheduling
// (e.g. "Libur" for a day off placed directly on the roster).
type Entry struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ShiftLabel  string
	ExpectedIn  time.Time
	ExpectedOut time.Time
	StatusLabel *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Declared label values recognized by the resolver. Labels are stored
// free-form by the scheduling UI, so matching is case-insensitive.
const (
	LabelLibur = "libur"
	LabelSakit = "sakit"
	LabelIzin  = "izin"
)

// HasLabel reports whether the entry declares the given status label.
func (e Entry) HasLabel(label string) bool {
	if e.StatusLabel == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*e.StatusLabel), label)
}

// ScheduledHours returns the expected shift length in hours, rounded to
// 2 decimals. An expected-out earlier than expected-in spans midnight.
func (e Entry) ScheduledHours() decimal.Decimal {
	out := e.ExpectedOut
	if out.Before(e.ExpectedIn) {
		out = out.Add(24 * time.Hour)
	}
	minutes := out.Sub(e.ExpectedIn).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)
}
