package http

import (
	"encoding/json"
	"net/http"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/handler/http/response"
	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
	attendancesvc "github.com/gajihub/attendance-engine-go/internal/service/attendance"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	CreateScheduleEntry(w http.ResponseWriter, r *http.Request)
	CorrectScheduleEntry(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceHandler(attendanceService *attendancesvc.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// GetSummary implements AttendanceHandler. The summary is recomputed
// from source records on every call.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.SummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.GetSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateScheduleEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CreateScheduleEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule entry created", result)
}

// CorrectScheduleEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) CorrectScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req schedule.CorrectEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EntryID = chi.URLParam(r, "id")

	if err := h.attendanceService.CorrectScheduleEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule entry corrected", nil)
}

// GetSchedule implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	start, okStart := validator.IsValidDate(r.URL.Query().Get("start_date"))
	end, okEnd := validator.IsValidDate(r.URL.Query().Get("end_date"))
	if !okStart || !okEnd {
		response.BadRequest(w, "start_date and end_date must be YYYY-MM-DD dates", nil)
		return
	}

	result, err := h.attendanceService.GetSchedule(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
