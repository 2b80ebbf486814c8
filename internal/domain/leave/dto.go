package leave

import (
	"time"

	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
)

type SubmitRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !RequestType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "unknown request type"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a YYYY-MM-DD date"})
	}
	end := start
	if r.EndDate != "" {
		var okEnd bool
		end, okEnd = validator.IsValidDate(r.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a YYYY-MM-DD date"})
		}
	}
	if okStart && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DateRange returns the parsed range. A missing end date means a
// single-day request. Validate must have passed.
func (r SubmitRequestRequest) DateRange() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end := start
	if r.EndDate != "" {
		end, _ = validator.IsValidDate(r.EndDate)
	}
	return start, end
}

type DecideRequestRequest struct {
	RequestID       string  `json:"request_id"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type RequestResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	DayCount   int     `json:"day_count"`
	Reason     string  `json:"reason,omitempty"`
	Status     string  `json:"status"`
	ApproverID *string `json:"approver_id,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
}

type QuotaResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Granted    int    `json:"granted"`
	Used       int    `json:"used"`
	Remaining  int    `json:"remaining"`
}

func ToRequestResponse(r Request) RequestResponse {
	var decidedAt *string
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		decidedAt = &s
	}
	return RequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       string(r.Type),
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		DayCount:   r.DayCount,
		Reason:     r.Reason,
		Status:     string(r.Status),
		ApproverID: r.ApproverID,
		DecidedAt:  decidedAt,
	}
}

func ToQuotaResponse(q Quota) QuotaResponse {
	return QuotaResponse{
		EmployeeID: q.EmployeeID,
		Year:       q.Year,
		Granted:    q.Granted,
		Used:       q.Used,
		Remaining:  q.Remaining,
	}
}
