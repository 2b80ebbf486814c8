package response

import (
	"errors"
	"net/http"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/employee"
	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/domain/overtime"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Typed resolution errors carry context worth surfacing.
	var missingSchedule *schedule.MissingScheduleError
	if errors.As(err, &missingSchedule) {
		UnprocessableEntity(w, "MISSING_SCHEDULE", "A day in the period has no schedule entry", map[string]string{
			"employee_id": missingSchedule.EmployeeID,
			"date":        missingSchedule.Date.Format("2006-01-02"),
		})
		return
	}
	var quotaExceeded *leave.QuotaExceededError
	if errors.As(err, &quotaExceeded) {
		UnprocessableEntity(w, "QUOTA_EXCEEDED", "Leave quota is insufficient", map[string]string{
			"employee_id": quotaExceeded.EmployeeID,
		})
		return
	}
	var ambiguousRate *payroll.AmbiguousRateError
	if errors.As(err, &ambiguousRate) {
		UnprocessableEntity(w, "AMBIGUOUS_RATE", err.Error(), nil)
		return
	}
	var invalidTransition *payroll.InvalidStateTransitionError
	if errors.As(err, &invalidTransition) {
		Conflict(w, err.Error())
		return
	}
	var negativeDuration *overtime.NegativeDurationError
	if errors.As(err, &negativeDuration) {
		BadRequest(w, "Overtime span must be longer than zero", nil)
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrEntryNotFound):
		NotFound(w, "Schedule entry not found")
	case errors.Is(err, schedule.ErrEntryExists):
		Conflict(w, "Schedule entry already exists for this employee and date")
	case errors.Is(err, schedule.ErrEntryImmutable):
		Conflict(w, "Past schedule entries can only be changed through a correction")
	case errors.Is(err, schedule.ErrInvalidShiftEnd):
		BadRequest(w, "Expected-out must differ from expected-in", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open check-in found")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrNoScheduleToday):
		Conflict(w, "No schedule entry for today")
	case errors.Is(err, attendance.ErrTooEarlyToCheckIn):
		Conflict(w, "Too early to check in")
	case errors.Is(err, attendance.ErrOnApprovedLeave):
		Conflict(w, "An approved leave request covers today")
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "End date must not be before start date", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidStatusTransition):
		Conflict(w, "Leave request status transition not allowed")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An approved request already covers part of this range")
	case errors.Is(err, leave.ErrSingleDayTypeSpansRange):
		BadRequest(w, "This request type applies to a single date only", nil)
	case errors.Is(err, leave.ErrQuotaNotFound):
		NotFound(w, "Leave quota not found for employee and year")
	case errors.Is(err, leave.ErrQuotaExists):
		Conflict(w, "Leave quota already exists for employee and year")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrRequestAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrDuplicateRequest):
		Conflict(w, "An overtime request already exists for this date")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSettingsNotFound):
		NotFound(w, "Payroll settings not configured")
	case errors.Is(err, payroll.ErrRateEntryNotFound):
		NotFound(w, "Rate entry not found")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Component not found")
	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Payroll batch not found")
	case errors.Is(err, payroll.ErrLineNotFound):
		NotFound(w, "Payroll line not found")
	case errors.Is(err, payroll.ErrBatchExists):
		Conflict(w, "A batch already exists for this period")
	case errors.Is(err, payroll.ErrBatchNotMutable):
		Conflict(w, "Batch lines are frozen in this state")
	case errors.Is(err, payroll.ErrBatchNotDeletable):
		Conflict(w, "Only draft batches may be deleted")
	case errors.Is(err, payroll.ErrBatchHasErrorLines):
		Conflict(w, "Batch has error lines; regenerate before submitting")
	case errors.Is(err, payroll.ErrCorrectionNotAllowed):
		Conflict(w, "Corrections are only allowed while the batch is draft or submitted")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
