package cron

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/metrics"
)

// LeaveJobs keeps the leave request gauges in line with storage
type LeaveJobs struct {
	counts dashboard.DashboardRepository
}

func NewLeaveJobs(counts dashboard.DashboardRepository) *LeaveJobs {
	return &LeaveJobs{counts: counts}
}

// RefreshStatusGauges sets hr_portal_leave_requests{status} for every status.
func (j *LeaveJobs) RefreshStatusGauges(ctx context.Context) error {
	for _, status := range []leave.LeaveRequestStatus{
		leave.LeaveRequestStatusPending,
		leave.LeaveRequestStatusApproved,
		leave.LeaveRequestStatusRejected,
	} {
		count, err := j.counts.CountLeaveRequestsByStatus(ctx, status)
		if err != nil {
			return fmt.Errorf("count %s leave requests: %w", status, err)
		}
		metrics.LeaveRequestsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
	return nil
}
