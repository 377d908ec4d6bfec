package leave

import (
	"context"
)

// LeaveService is the actor facing API. Every method reads the actor from ctx
// (see user.WithActor) and applies the visibility rules before touching data.
type LeaveService interface {
	SubmitLeaveRequest(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	DecideLeaveRequest(ctx context.Context, requestID string, decision Decision) (LeaveRequestResponse, error)
	AddReply(ctx context.Context, requestID string, req AddReplyRequest) (ReplyResponse, error)
	// Balance
	GetMyBalance(ctx context.Context, year int) (LeaveBalanceResponse, error)
	GetBalance(ctx context.Context, userID string, year int) (LeaveBalanceResponse, error)
}
