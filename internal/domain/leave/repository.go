package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// List returns requests newest first; a nil status means every status.
	List(ctx context.Context, status *LeaveRequestStatus) ([]LeaveRequest, error)
	// Decide moves a pending request to status. It fails with ErrInvalidStateTransition
	// when the stored request is not pending and leaves the row untouched.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, decidedBy string, decidedAt time.Time) (LeaveRequest, error)
}

// ReplyRepository - interface for leave_replies table
type ReplyRepository interface {
	Create(ctx context.Context, reply Reply) (Reply, error)
	// ListByRequestIDs groups replies by request, each group oldest first.
	ListByRequestIDs(ctx context.Context, requestIDs []string) (map[string][]Reply, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetOrCreate inserts {totalDays, 0} unless a row for (userID, year) exists,
	// then returns the stored row. Concurrent callers observe the same row.
	GetOrCreate(ctx context.Context, userID string, year int, totalDays int) (LeaveBalance, error)
	// Get reads an existing row without creating it; ErrBalanceNotFound otherwise.
	Get(ctx context.Context, userID string, year int) (LeaveBalance, error)
	AddUsedDays(ctx context.Context, userID string, year int, days int) (LeaveBalance, error)
}

// Transactor runs fn as one unit of work. Repositories called with the ctx
// handed to fn take part in it; a non-nil error from fn undoes every write.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
