package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("employee has already checked in on this date")
	ErrNotCheckedIn      = errors.New("employee has not checked in on this date")
	ErrAlreadyCheckedOut = errors.New("employee has already checked out on this date")
	ErrNoScheduleToday   = errors.New("no schedule entry found for this date")
	ErrOnApprovedLeave   = errors.New("an approved leave request covers this date")
	ErrTooEarlyToCheckIn = errors.New("too early to check in")
	ErrPunchNotFound     = errors.New("attendance punch not found")
	ErrSummaryNotFound   = errors.New("attendance summary not found")
	ErrInvalidPeriod     = errors.New("end date must not be before start date")
)
