package leave

import (
	"errors"
	"fmt"
)

// Leave domain errors
var (
	ErrRequestNotFound          = errors.New("leave request not found")
	ErrRequestAlreadyProcessed  = errors.New("leave request has already been approved or rejected")
	ErrInvalidStatusTransition  = errors.New("leave request status transition not allowed")
	ErrInvalidDateRange         = errors.New("end date must not be before start date")
	ErrInvalidRequestType       = errors.New("unknown leave request type")
	ErrQuotaNotFound            = errors.New("leave quota not found for employee and year")
	ErrQuotaExists              = errors.New("leave quota already exists for employee and year")
	ErrOverlappingRequest       = errors.New("an approved request already covers part of this range")
	ErrSingleDayTypeSpansRange  = errors.New("this request type applies to a single date only")
)

// QuotaExceededError reports an approval that would drive the remaining
// balance negative. It is surfaced to the approver, never auto-corrected.
type QuotaExceededError struct {
	EmployeeID string
	Year       int
	Requested  int
	Remaining  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("leave quota exceeded for employee %s in %d: requested %d days, %d remaining",
		e.EmployeeID, e.Year, e.Requested, e.Remaining)
}

// IsQuotaExceeded reports whether err wraps a QuotaExceededError.
func IsQuotaExceeded(err error) bool {
	var target *QuotaExceededError
	return errors.As(err, &target)
}
