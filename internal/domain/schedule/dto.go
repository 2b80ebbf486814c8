package schedule

import (
	"time"

	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
)

type CreateEntryRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	ShiftLabel  string  `json:"shift_label"`
	ExpectedIn  string  `json:"expected_in"`
	ExpectedOut string  `json:"expected_out"`
	StatusLabel *string `json:"status_label,omitempty"`
}

func (r CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	in, okIn := validator.IsValidTime(r.ExpectedIn)
	if !okIn {
		errs = append(errs, validator.ValidationError{Field: "expected_in", Message: "must be an HH:MM time"})
	}
	out, okOut := validator.IsValidTime(r.ExpectedOut)
	if !okOut {
		errs = append(errs, validator.ValidationError{Field: "expected_out", Message: "must be an HH:MM time"})
	}
	if okIn && okOut && out.Equal(in) {
		errs = append(errs, validator.ValidationError{Field: "expected_out", Message: "must differ from expected_in"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Entry returns the parsed roster entry with clock times anchored on
// the date. Validate must have passed.
func (r CreateEntryRequest) Entry() Entry {
	date, _ := validator.IsValidDate(r.Date)
	in, _ := validator.IsValidTime(r.ExpectedIn)
	out, _ := validator.IsValidTime(r.ExpectedOut)
	return Entry{
		EmployeeID:  r.EmployeeID,
		Date:        date,
		ShiftLabel:  r.ShiftLabel,
		ExpectedIn:  time.Date(date.Year(), date.Month(), date.Day(), in.Hour(), in.Minute(), 0, 0, time.UTC),
		ExpectedOut: time.Date(date.Year(), date.Month(), date.Day(), out.Hour(), out.Minute(), 0, 0, time.UTC),
		StatusLabel: r.StatusLabel,
	}
}

type CorrectEntryRequest struct {
	EntryID     string  `json:"entry_id"`
	ShiftLabel  string  `json:"shift_label"`
	ExpectedIn  string  `json:"expected_in"`
	ExpectedOut string  `json:"expected_out"`
	StatusLabel *string `json:"status_label,omitempty"`
	Reason      string  `json:"reason"`
}

func (r CorrectEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntryID) {
		errs = append(errs, validator.ValidationError{Field: "entry_id", Message: "entry_id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "a correction reason is required"})
	}
	if _, ok := validator.IsValidTime(r.ExpectedIn); !ok {
		errs = append(errs, validator.ValidationError{Field: "expected_in", Message: "must be an HH:MM time"})
	}
	if _, ok := validator.IsValidTime(r.ExpectedOut); !ok {
		errs = append(errs, validator.ValidationError{Field: "expected_out", Message: "must be an HH:MM time"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	ShiftLabel  string  `json:"shift_label"`
	ExpectedIn  string  `json:"expected_in"`
	ExpectedOut string  `json:"expected_out"`
	StatusLabel *string `json:"status_label,omitempty"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Date:        e.Date.Format("2006-01-02"),
		ShiftLabel:  e.ShiftLabel,
		ExpectedIn:  e.ExpectedIn.Format("15:04"),
		ExpectedOut: e.ExpectedOut.Format("15:04"),
		StatusLabel: e.StatusLabel,
	}
}
