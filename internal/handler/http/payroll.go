package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/handler/http/response"
	"github.com/gajihub/attendance-engine-go/internal/pkg/jwt"
	payrollsvc "github.com/gajihub/attendance-engine-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	CreateRateEntry(w http.ResponseWriter, r *http.Request)
	ListRateEntries(w http.ResponseWriter, r *http.Request)
	DeleteRateEntry(w http.ResponseWriter, r *http.Request)
	CreateComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
	DeleteComponent(w http.ResponseWriter, r *http.Request)

	Generate(w http.ResponseWriter, r *http.Request)
	Regenerate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CorrectLine(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	batchService  *payrollsvc.BatchService
	configService *payrollsvc.ConfigService
}

func NewPayrollHandler(batchService *payrollsvc.BatchService, configService *payrollsvc.ConfigService) PayrollHandler {
	return &payrollHandlerImpl{
		batchService:  batchService,
		configService: configService,
	}
}

// GetSettings implements PayrollHandler.
func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpdateSettings implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings updated", result)
}

// CreateRateEntry implements PayrollHandler.
func (h *payrollHandlerImpl) CreateRateEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.CreateRateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Rate entry created", result)
}

// ListRateEntries implements PayrollHandler.
func (h *payrollHandlerImpl) ListRateEntries(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListRateEntries(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// DeleteRateEntry implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteRateEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.configService.DeleteRateEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Rate entry deleted", nil)
}

// CreateComponent implements PayrollHandler.
func (h *payrollHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.CreateComponent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Component created", result)
}

// ListComponents implements PayrollHandler.
func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListComponents(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// DeleteComponent implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := h.configService.DeleteComponent(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Component deleted", nil)
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.batchService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll batch generated", result)
}

// Regenerate implements PayrollHandler.
func (h *payrollHandlerImpl) Regenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.batchService.Regenerate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll batch regenerated", result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.batchService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *payroll.BatchStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := payroll.BatchStatus(statusStr)
		if !s.Valid() {
			response.BadRequest(w, "Unknown batch status", nil)
			return
		}
		status = &s
	}

	result, err := h.batchService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) decide(
	w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, batchID, actorID string) (payroll.BatchResponse, error),
	message string,
) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := fn(r.Context(), chi.URLParam(r, "id"), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, result)
}

// Submit implements PayrollHandler.
func (h *payrollHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.batchService.Submit, "Payroll batch submitted")
}

// Approve implements PayrollHandler.
func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.batchService.Approve, "Payroll batch approved")
}

// Reject implements PayrollHandler.
func (h *payrollHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.batchService.Reject, "Payroll batch rejected")
}

// Reopen implements PayrollHandler.
func (h *payrollHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.batchService.Reopen, "Payroll batch reopened")
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.batchService.MarkPaid, "Payroll batch marked as paid")
}

// Delete implements PayrollHandler.
func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.batchService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll batch deleted", nil)
}

// CorrectLine implements PayrollHandler.
func (h *payrollHandlerImpl) CorrectLine(w http.ResponseWriter, r *http.Request) {
	var req payroll.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LineID = chi.URLParam(r, "id")

	result, err := h.batchService.Correct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Line corrected", result)
}

// Export implements PayrollHandler. The workbook is streamed, so
// failures after the first write can only cut the body short.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	// Render into memory first so a failed export still returns the
	// JSON error envelope instead of a half-written attachment.
	var buf bytes.Buffer
	if err := h.batchService.ExportXLSX(r.Context(), batchID, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-batch-%s.xlsx"`, batchID))
	_, _ = buf.WriteTo(w)
}

// ListEvents implements PayrollHandler.
func (h *payrollHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.batchService.ListEvents(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
