package leave

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

// BalanceService is the per user, per year ledger.
type BalanceService struct {
	leave.LeaveBalanceRepository
	defaultTotalDays int
}

func NewBalanceService(leaveBalanceRepository leave.LeaveBalanceRepository, defaultTotalDays int) *BalanceService {
	if defaultTotalDays <= 0 {
		defaultTotalDays = leave.DefaultTotalDays
	}
	return &BalanceService{
		LeaveBalanceRepository: leaveBalanceRepository,
		defaultTotalDays:       defaultTotalDays,
	}
}

// GetOrCreate returns the ledger of (userID, year), creating it with the
// default allotment on first access.
func (b *BalanceService) GetOrCreate(ctx context.Context, userID string, year int) (leave.LeaveBalance, error) {
	balance, err := b.LeaveBalanceRepository.GetOrCreate(ctx, userID, year, b.defaultTotalDays)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get or create leave balance: %w", err)
	}
	return balance, nil
}

// Consume charges days to the ledger. Remaining days are allowed to go negative.
func (b *BalanceService) Consume(ctx context.Context, userID string, year int, days int) (leave.LeaveBalance, error) {
	if _, err := b.GetOrCreate(ctx, userID, year); err != nil {
		return leave.LeaveBalance{}, err
	}

	balance, err := b.LeaveBalanceRepository.AddUsedDays(ctx, userID, year, days)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to add used days: %w", err)
	}
	return balance, nil
}
