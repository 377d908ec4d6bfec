package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetStats returns the dashboard counters using parallel goroutines, one query each
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return dashboard.StatsResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionDashboardView) {
		return dashboard.StatsResponse{}, leave.ErrUnauthorized
	}

	var stats dashboard.StatsResponse

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.DashboardRepository.CountUsers(gctx)
		if err != nil {
			return fmt.Errorf("total employees: %w", err)
		}
		stats.TotalEmployees = count
		return nil
	})

	g.Go(func() error {
		count, err := s.DashboardRepository.CountLeaveRequestsByStatus(gctx, leave.LeaveRequestStatusPending)
		if err != nil {
			return fmt.Errorf("pending leaves: %w", err)
		}
		stats.PendingLeaves = count
		return nil
	})

	g.Go(func() error {
		count, err := s.DashboardRepository.CountLeaveRequestsByStatus(gctx, leave.LeaveRequestStatusApproved)
		if err != nil {
			return fmt.Errorf("approved leaves: %w", err)
		}
		stats.ApprovedLeaves = count
		return nil
	})

	g.Go(func() error {
		count, err := s.DashboardRepository.CountDepartments(gctx)
		if err != nil {
			return fmt.Errorf("total departments: %w", err)
		}
		stats.TotalDepartments = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, err
	}

	stats.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return stats, nil
}
