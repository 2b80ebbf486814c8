package overtime

import (
	"time"

	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason"`
}

func (r SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	if _, ok := validator.IsValidTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be an HH:MM time"})
	}
	if _, ok := validator.IsValidTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be an HH:MM time"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Times returns the parsed date and the start/end clock times anchored
// on that date. Validate must have passed.
func (r SubmitRequestRequest) Times() (date, start, end time.Time) {
	date, _ = validator.IsValidDate(r.Date)
	st, _ := validator.IsValidTime(r.StartTime)
	et, _ := validator.IsValidTime(r.EndTime)
	start = time.Date(date.Year(), date.Month(), date.Day(), st.Hour(), st.Minute(), 0, 0, time.UTC)
	end = time.Date(date.Year(), date.Month(), date.Day(), et.Hour(), et.Minute(), 0, 0, time.UTC)
	return date, start, end
}

type RequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	Reason        string          `json:"reason,omitempty"`
	Status        string          `json:"status"`
	ApproverID    *string         `json:"approver_id,omitempty"`
	DecidedAt     *string         `json:"decided_at,omitempty"`
}

func ToRequestResponse(r Request) RequestResponse {
	var decidedAt *string
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		decidedAt = &s
	}
	return RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		Date:          r.Date.Format("2006-01-02"),
		StartTime:     r.StartTime.Format("15:04"),
		EndTime:       r.EndTime.Format("15:04"),
		DurationHours: r.DurationHours,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		DecidedAt:     decidedAt,
	}
}
