package memory

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

type dashboardRepositoryImpl struct {
	store *Store
	users *userRepositoryImpl
}

func NewDashboardRepository(store *Store) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{store: store, users: &userRepositoryImpl{store: store}}
}

func (r *dashboardRepositoryImpl) CountUsers(ctx context.Context) (int64, error) {
	return r.users.Count(ctx)
}

func (r *dashboardRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	return r.users.CountDepartments(ctx)
}

func (r *dashboardRepositoryImpl) CountLeaveRequestsByStatus(ctx context.Context, status leave.LeaveRequestStatus) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, request := range s.requests {
		if request.Status == status {
			count++
		}
	}
	return count, nil
}
