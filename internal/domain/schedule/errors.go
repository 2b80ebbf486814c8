package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEntryNotFound   = errors.New("schedule entry not found")
	ErrEntryExists     = errors.New("schedule entry already exists for this employee and date")
	ErrEntryImmutable  = errors.New("past schedule entries can only be changed through an explicit correction")
	ErrInvalidShiftEnd = errors.New("expected-out must differ from expected-in")
)

// MissingScheduleError reports a date inside a queried period that has
// no schedule entry. The aggregator surfaces it instead of fabricating
// a default day.
type MissingScheduleError struct {
	EmployeeID string
	Date       time.Time
}

func (e *MissingScheduleError) Error() string {
	return fmt.Sprintf("no schedule entry for employee %s on %s", e.EmployeeID, e.Date.Format("2006-01-02"))
}

// IsMissingSchedule reports whether err wraps a MissingScheduleError.
func IsMissingSchedule(err error) bool {
	var target *MissingScheduleError
	return errors.As(err, &target)
}
