package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

// RequestService owns leave requests and their state machine. It does no
// authorization; callers check visibility first.
type RequestService struct {
	transactor leave.Transactor
	leave.LeaveRequestRepository
	balanceService *BalanceService
	now            func() time.Time
}

func NewRequestService(transactor leave.Transactor, leaveRequestRepository leave.LeaveRequestRepository, balanceService *BalanceService) *RequestService {
	return &RequestService{
		transactor:             transactor,
		LeaveRequestRepository: leaveRequestRepository,
		balanceService:         balanceService,
		now:                    func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates req and stores it as pending. Balances are untouched.
func (r *RequestService) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, endDate := req.Dates()
	request := leave.LeaveRequest{
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     startDate,
		EndDate:       endDate,
		DayCount:      req.DayCount,
		Reason:        req.Reason,
		Status:        leave.LeaveRequestStatusPending,
	}

	created, err := r.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Decide moves a pending request to its terminal status. On approval the
// requester's ledger for the start date's year is charged in the same
// transaction; if that fails the request stays pending.
func (r *RequestService) Decide(ctx context.Context, requestID string, decision leave.Decision, approverID string) (leave.LeaveRequest, error) {
	status, err := decision.Status()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var decided leave.LeaveRequest
	err = r.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		request, err := r.LeaveRequestRepository.Decide(txCtx, requestID, status, approverID, r.now())
		if err != nil {
			return err
		}

		if status == leave.LeaveRequestStatusApproved {
			if _, err := r.balanceService.Consume(txCtx, request.RequesterID, request.BalanceYear(), request.DayCount); err != nil {
				return fmt.Errorf("%w: %w", leave.ErrBalanceUpdateFailed, err)
			}
		}

		decided = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return decided, nil
}

func (r *RequestService) Get(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return r.LeaveRequestRepository.GetByID(ctx, requestID)
}

// ListAll returns requests newest first, optionally narrowed to one status.
func (r *RequestService) ListAll(ctx context.Context, status *leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	requests, err := r.LeaveRequestRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}
