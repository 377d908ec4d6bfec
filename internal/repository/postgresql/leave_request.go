package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	id, requester_id, requester_name, leave_type,
	start_date, end_date, day_count, reason,
	status, submitted_at, decided_by, decided_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		request   leave.LeaveRequest
		leaveType string
		status    string
	)
	err := row.Scan(
		&request.ID, &request.RequesterID, &request.RequesterName, &leaveType,
		&request.StartDate, &request.EndDate, &request.DayCount, &request.Reason,
		&status, &request.SubmittedAt, &request.DecidedBy, &request.DecidedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.LeaveType = leave.LeaveType(leaveType)
	request.Status = leave.LeaveRequestStatus(status)
	return request, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			requester_id, requester_name, leave_type,
			start_date, end_date, day_count, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.RequesterID, request.RequesterName, string(request.LeaveType),
		request.StartDate, request.EndDate, request.DayCount, request.Reason,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("select leave request: %w", err)
	}
	return request, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, status *leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}

	return requests, nil
}

// Decide implements leave.LeaveRequestRepository. The status guard in the
// WHERE clause makes concurrent deciders serialize on the row lock; only the
// first one still sees 'pending'.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + leaveRequestColumns

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id, string(status), decidedBy, decidedAt))
	if err == nil {
		return request, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("update leave request status: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("check leave request: %w", err)
	}
	if !exists {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return leave.LeaveRequest{}, leave.ErrInvalidStateTransition
}
