package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db    *database.DB
	users *userRepositoryImpl
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db, users: &userRepositoryImpl{db: db}}
}

func (r *dashboardRepositoryImpl) CountUsers(ctx context.Context) (int64, error) {
	return r.users.Count(ctx)
}

func (r *dashboardRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	return r.users.CountDepartments(ctx)
}

func (r *dashboardRepositoryImpl) CountLeaveRequestsByStatus(ctx context.Context, status leave.LeaveRequestStatus) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM leave_requests WHERE status = $1`
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s leave requests: %w", status, err)
	}
	return count, nil
}
