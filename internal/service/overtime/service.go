package overtime

import (
	"context"
	"fmt"

	"github.com/gajihub/attendance-engine-go/internal/domain/overtime"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
)

// Service owns the overtime request lifecycle. Overtime is an explicit
// entitlement: only approved requests ever reach pay calculation.
type Service struct {
	requestRepo overtime.RequestRepository
	clock       clock.Clock
}

func NewService(requestRepo overtime.RequestRepository, clk clock.Clock) *Service {
	return &Service{requestRepo: requestRepo, clock: clk}
}

// Submit records a pending overtime request for a single date. One
// request per employee per date; the duration is computed up front so
// malformed spans fail at submission, not at payroll time.
func (s *Service) Submit(ctx context.Context, req overtime.SubmitRequestRequest) (overtime.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.RequestResponse{}, err
	}

	date, start, end := req.Times()

	duration, err := overtime.ComputeDuration(start, end)
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	existing, err := s.requestRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to check existing overtime request: %w", err)
	}
	if existing != nil && existing.Status != overtime.StatusRejected {
		return overtime.RequestResponse{}, overtime.ErrDuplicateRequest
	}

	request := overtime.Request{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		DurationHours: duration,
		Reason:        req.Reason,
		Status:        overtime.StatusPending,
		SubmittedAt:   s.clock.Now(),
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return overtime.ToRequestResponse(created), nil
}

// Approve moves a pending request to approved.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (overtime.RequestResponse, error) {
	return s.decide(ctx, requestID, approverID, overtime.StatusApproved)
}

// Reject moves a pending request to rejected.
func (s *Service) Reject(ctx context.Context, requestID, approverID string) (overtime.RequestResponse, error) {
	return s.decide(ctx, requestID, approverID, overtime.StatusRejected)
}

func (s *Service) decide(ctx context.Context, requestID, approverID string, target overtime.RequestStatus) (overtime.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return overtime.RequestResponse{}, err
	}
	if !request.Status.CanTransition(target) {
		return overtime.RequestResponse{}, overtime.ErrRequestAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = target
	request.ApproverID = &approverID
	request.DecidedAt = &now

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to update overtime request: %w", err)
	}

	return overtime.ToRequestResponse(request), nil
}
