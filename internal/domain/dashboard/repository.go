package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

// DashboardRepository - aggregate queries; every method is one round trip
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountLeaveRequestsByStatus(ctx context.Context, status leave.LeaveRequestStatus) (int64, error)
}
