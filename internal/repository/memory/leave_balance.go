package memory

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

type leaveBalanceRepositoryImpl struct {
	store *Store
}

func NewLeaveBalanceRepository(store *Store) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{store: store}
}

func (r *leaveBalanceRepositoryImpl) GetOrCreate(ctx context.Context, userID string, year int, totalDays int) (leave.LeaveBalance, error) {
	s := r.store
	key := balanceKey{userID: userID, year: year}

	s.mu.Lock()
	defer s.mu.Unlock()

	if balance, ok := s.balances[key]; ok {
		return balance, nil
	}

	now := s.now()
	balance := leave.LeaveBalance{
		UserID:    userID,
		Year:      year,
		TotalDays: totalDays,
		UsedDays:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.balances[key] = balance
	s.recordUndo(ctx, func() { delete(s.balances, key) })

	return balance, nil
}

func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, userID string, year int) (leave.LeaveBalance, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, ok := s.balances[balanceKey{userID: userID, year: year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (r *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, userID string, year int, days int) (leave.LeaveBalance, error) {
	s := r.store
	key := balanceKey{userID: userID, year: year}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[key]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}

	previous := balance
	balance.UsedDays += days
	balance.UpdatedAt = s.now()
	s.balances[key] = balance
	s.recordUndo(ctx, func() { s.balances[key] = previous })

	return balance, nil
}
