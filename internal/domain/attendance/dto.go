package attendance

import (
	"time"

	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r ClockInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ActualIn   *string `json:"actual_in,omitempty"`
	ActualOut  *string `json:"actual_out,omitempty"`
}

func ToPunchResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Date:       p.Date.Format("2006-01-02"),
		ActualIn:   timePtrToString(p.ActualIn),
		ActualOut:  timePtrToString(p.ActualOut),
	}
}

type SummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a YYYY-MM-DD date"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a YYYY-MM-DD date"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed range. Validate must have passed.
func (r SummaryRequest) Period() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type SummaryResponse struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	DaysPresent int `json:"days_present"`
	DaysSick    int `json:"days_sick"`
	DaysLeave   int `json:"days_leave"`
	DaysPermit  int `json:"days_permit"`
	DaysAbsent  int `json:"days_absent"`
	DaysOff     int `json:"days_off"`
	DaysPending int `json:"days_pending"`

	TotalLatenessMinutes int             `json:"total_lateness_minutes"`
	TotalOvertimeHours   decimal.Decimal `json:"total_overtime_hours"`
	TotalWorkedHours     decimal.Decimal `json:"total_worked_hours"`

	LatenessDetails []LatenessDetail `json:"lateness_details"`
	OvertimeDetails []OvertimeDetail `json:"overtime_details"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:           s.EmployeeID,
		StartDate:            s.StartDate.Format("2006-01-02"),
		EndDate:              s.EndDate.Format("2006-01-02"),
		DaysPresent:          s.DaysPresent,
		DaysSick:             s.DaysSick,
		DaysLeave:            s.DaysLeave,
		DaysPermit:           s.DaysPermit,
		DaysAbsent:           s.DaysAbsent,
		DaysOff:              s.DaysOff,
		DaysPending:          s.DaysPending,
		TotalLatenessMinutes: s.TotalLatenessMinutes,
		TotalOvertimeHours:   s.TotalOvertimeHours,
		TotalWorkedHours:     s.TotalWorkedHours,
		LatenessDetails:      s.LatenessDetails,
		OvertimeDetails:      s.OvertimeDetails,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}
