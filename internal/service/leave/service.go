package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/validator"
)

// Notifier pushes events to a user's open streams. Delivery is best effort.
type Notifier interface {
	Publish(userID string, event sse.Event)
}

type LeaveServiceImpl struct {
	requestService *RequestService
	replyService   *ReplyService
	balanceService *BalanceService
	directory      user.Directory
	notifier       Notifier
	now            func() time.Time
}

func NewLeaveService(
	requestService *RequestService,
	replyService *ReplyService,
	balanceService *BalanceService,
	directory user.Directory,
	notifier Notifier,
) leave.LeaveService {
	return &LeaveServiceImpl{
		requestService: requestService,
		replyService:   replyService,
		balanceService: balanceService,
		directory:      directory,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// SubmitLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) SubmitLeaveRequest(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionLeaveCreate) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
	}

	// Always on behalf of the caller
	req.RequesterID = actor.ID
	req.RequesterName = actor.Name

	request, err := l.requestService.Submit(ctx, req)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	metrics.LeaveRequestsSubmittedTotal.WithLabelValues(string(request.LeaveType)).Inc()
	slog.Info("leave request submitted",
		"leave_request_id", request.ID,
		"requester_id", request.RequesterID,
		"leave_type", request.LeaveType,
		"day_count", request.DayCount,
	)

	departments := l.departmentsFor(ctx, actor, []leave.LeaveRequest{request})
	return leave.NewLeaveRequestResponse(request, AllowedActions(actor, request, departments)), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	var status *leave.LeaveRequestStatus
	if filter.Status != nil {
		s := leave.LeaveRequestStatus(*filter.Status)
		status = &s
	}

	requests, err := l.requestService.ListAll(ctx, status)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	departments := l.departmentsFor(ctx, actor, requests)
	visible := FilterVisible(actor, requests, departments)

	if err := l.replyService.Attach(ctx, visible); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(visible))
	for _, request := range visible {
		responses = append(responses, leave.NewLeaveRequestResponse(request, AllowedActions(actor, request, departments)))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: int64(len(responses)),
		Requests:   responses,
	}, nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, departments, err := l.getVisible(ctx, actor, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return l.respond(ctx, actor, request, departments)
}

// DecideLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DecideLeaveRequest(ctx context.Context, requestID string, decision leave.Decision) (leave.LeaveRequestResponse, error) {
	start := time.Now()

	response, err := l.decide(ctx, requestID, decision)
	if err != nil {
		reason := decideFailureReason(err)
		metrics.LeaveDecisionErrorsTotal.WithLabelValues(reason).Inc()
		metrics.DecideDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return leave.LeaveRequestResponse{}, err
	}

	metrics.DecideDuration.WithLabelValues(response.Status).Observe(time.Since(start).Seconds())
	return response, nil
}

func (l *LeaveServiceImpl) decide(ctx context.Context, requestID string, decision leave.Decision) (leave.LeaveRequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if _, err := decision.Status(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.requestService.Get(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	departments := l.departmentsFor(ctx, actor, []leave.LeaveRequest{request})
	if !CanAttemptDecide(actor, request, departments) {
		slog.Warn("decide refused",
			"leave_request_id", requestID,
			"actor_id", actor.ID,
			"role", actor.Role,
		)
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
	}

	decided, err := l.requestService.Decide(ctx, requestID, decision, actor.ID)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceUpdateFailed) {
			slog.Error("decision rolled back, balance update failed",
				"leave_request_id", requestID,
				"requester_id", request.RequesterID,
				"error", err,
			)
		}
		return leave.LeaveRequestResponse{}, err
	}

	metrics.LeaveDecisionsTotal.WithLabelValues(string(decided.Status), string(actor.Role)).Inc()
	if decided.Status == leave.LeaveRequestStatusApproved {
		metrics.LeaveDaysConsumedTotal.Add(float64(decided.DayCount))
	}
	slog.Info("leave request decided",
		"leave_request_id", decided.ID,
		"status", decided.Status,
		"decided_by", actor.ID,
	)

	l.publish(decided.RequesterID, leave.EventLeaveDecided, leave.DecidedEvent{
		LeaveRequestID: decided.ID,
		Status:         string(decided.Status),
		DecidedBy:      actor.ID,
		DecidedAt:      *decided.DecidedAt,
	})

	return l.respond(ctx, actor, decided, departments)
}

// AddReply implements leave.LeaveService.
func (l *LeaveServiceImpl) AddReply(ctx context.Context, requestID string, req leave.AddReplyRequest) (leave.ReplyResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.ReplyResponse{}, err
	}

	request, err := l.requestService.Get(ctx, requestID)
	if err != nil {
		return leave.ReplyResponse{}, err
	}

	departments := l.departmentsFor(ctx, actor, []leave.LeaveRequest{request})
	if !CanReply(actor, request, departments) {
		return leave.ReplyResponse{}, leave.ErrUnauthorized
	}

	reply, err := l.replyService.AddReply(ctx, requestID, req, actor.Name)
	if err != nil {
		return leave.ReplyResponse{}, err
	}

	metrics.LeaveRepliesTotal.WithLabelValues(string(actor.Role)).Inc()
	slog.Info("reply added",
		"leave_request_id", requestID,
		"reply_id", reply.ID,
		"author_id", actor.ID,
	)

	response := leave.NewReplyResponse(reply)
	l.publish(request.RequesterID, leave.EventLeaveReplied, leave.RepliedEvent{
		LeaveRequestID: requestID,
		Reply:          response,
	})

	return response, nil
}

// GetMyBalance implements leave.LeaveService. A zero year means the current year.
func (l *LeaveServiceImpl) GetMyBalance(ctx context.Context, year int) (leave.LeaveBalanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionBalanceViewOwn) {
		return leave.LeaveBalanceResponse{}, leave.ErrUnauthorized
	}

	return l.balanceOf(ctx, actor.ID, year)
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, userID string, year int) (leave.LeaveBalanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	if userID != actor.ID && !user.HasPermission(actor.Role, user.PermissionBalanceViewAll) {
		return leave.LeaveBalanceResponse{}, leave.ErrUnauthorized
	}

	// A user missing from the directory may still have a ledger, e.g. when
	// identity is issued by tokens alone. Only an existing ledger is shown then.
	if _, err := l.directory.GetByID(ctx, userID); err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return leave.LeaveBalanceResponse{}, err
		}
		return l.existingBalanceOf(ctx, userID, year)
	}

	return l.balanceOf(ctx, userID, year)
}

func (l *LeaveServiceImpl) existingBalanceOf(ctx context.Context, userID string, year int) (leave.LeaveBalanceResponse, error) {
	year, err := l.resolveYear(year)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	balance, err := l.balanceService.Get(ctx, userID, year)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.LeaveBalanceResponse{}, user.ErrUserNotFound
		}
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.NewLeaveBalanceResponse(balance), nil
}

// resolveYear maps 0 to the current year and rejects years outside 1..9999
func (l *LeaveServiceImpl) resolveYear(year int) (int, error) {
	if year == 0 {
		year = l.now().Year()
	}
	if year < 1 || year > 9999 {
		return 0, validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		}}
	}
	return year, nil
}

func (l *LeaveServiceImpl) balanceOf(ctx context.Context, userID string, year int) (leave.LeaveBalanceResponse, error) {
	year, err := l.resolveYear(year)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	balance, err := l.balanceService.GetOrCreate(ctx, userID, year)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.NewLeaveBalanceResponse(balance), nil
}

// getVisible loads a request and fails with ErrUnauthorized when actor may not see it.
func (l *LeaveServiceImpl) getVisible(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequest, DepartmentLookup, error) {
	request, err := l.requestService.Get(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	departments := l.departmentsFor(ctx, actor, []leave.LeaveRequest{request})
	if !CanView(actor, request, departments) {
		return leave.LeaveRequest{}, nil, leave.ErrUnauthorized
	}
	return request, departments, nil
}

func (l *LeaveServiceImpl) respond(ctx context.Context, actor user.Actor, request leave.LeaveRequest, departments DepartmentLookup) (leave.LeaveRequestResponse, error) {
	single := []leave.LeaveRequest{request}
	if err := l.replyService.Attach(ctx, single); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(single[0], AllowedActions(actor, single[0], departments)), nil
}

// departmentsFor resolves requester departments when actor is department
// scoped. A directory failure yields a nil lookup, which degrades visibility
// instead of failing the read.
func (l *LeaveServiceImpl) departmentsFor(ctx context.Context, actor user.Actor, requests []leave.LeaveRequest) DepartmentLookup {
	if actor.SeesEverything() || !user.HasPermission(actor.Role, user.PermissionLeaveViewDept) || len(requests) == 0 {
		return DepartmentLookup{}
	}

	seen := make(map[string]struct{}, len(requests))
	ids := make([]string, 0, len(requests))
	for _, request := range requests {
		if _, ok := seen[request.RequesterID]; ok {
			continue
		}
		seen[request.RequesterID] = struct{}{}
		ids = append(ids, request.RequesterID)
	}

	departments, err := l.directory.GetDepartments(ctx, ids)
	if err != nil {
		metrics.DirectoryLookupsTotal.WithLabelValues("degraded").Inc()
		slog.Warn("department lookup failed, manager visibility degraded",
			"actor_id", actor.ID,
			"error", err,
		)
		return nil
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("ok").Inc()
	if departments == nil {
		return DepartmentLookup{}
	}
	return DepartmentLookup(departments)
}

func (l *LeaveServiceImpl) publish(userID string, name string, data interface{}) {
	if l.notifier == nil {
		return
	}
	l.notifier.Publish(userID, sse.Event{Name: name, Data: data})
}

func decideFailureReason(err error) string {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, leave.ErrUnauthorized), errors.Is(err, user.ErrActorMissing):
		return "unauthorized"
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		return "not_found"
	case errors.Is(err, leave.ErrInvalidStateTransition):
		return "invalid_transition"
	case errors.Is(err, leave.ErrBalanceUpdateFailed):
		return "balance_update_failed"
	case errors.Is(err, leave.ErrInvalidDecision), errors.As(err, &validationErrs):
		return "invalid_input"
	}
	return "internal"
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

