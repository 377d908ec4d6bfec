package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetOrCreate implements leave.LeaveBalanceRepository. ON CONFLICT DO NOTHING
// lets concurrent first accesses race safely on the primary key.
func (r *leaveBalanceRepositoryImpl) GetOrCreate(ctx context.Context, userID string, year int, totalDays int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO leave_balances (user_id, year, total_days, used_days)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, userID, year, totalDays); err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("insert leave balance: %w", err)
	}

	query := `
		SELECT user_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE user_id = $1 AND year = $2
	`
	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&balance.UserID, &balance.Year, &balance.TotalDays, &balance.UsedDays,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("select leave balance: %w", err)
	}
	return balance, nil
}

// Get implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, userID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE user_id = $1 AND year = $2
	`
	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&balance.UserID, &balance.Year, &balance.TotalDays, &balance.UsedDays,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("select leave balance: %w", err)
	}
	return balance, nil
}

// AddUsedDays implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, userID string, year int, days int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $3, updated_at = NOW()
		WHERE user_id = $1 AND year = $2
		RETURNING user_id, year, total_days, used_days, created_at, updated_at
	`
	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, userID, year, days).Scan(
		&balance.UserID, &balance.Year, &balance.TotalDays, &balance.UsedDays,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("update used days: %w", err)
	}
	return balance, nil
}
