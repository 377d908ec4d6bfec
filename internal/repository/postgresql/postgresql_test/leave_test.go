package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPending(t *testing.T, ctx context.Context, repo leave.LeaveRequestRepository, requesterID string, days int) leave.LeaveRequest {
	t.Helper()
	request, err := repo.Create(ctx, leave.LeaveRequest{
		RequesterID:   requesterID,
		RequesterName: "Eve Sales",
		LeaveType:     leave.LeaveTypeVacation,
		StartDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		DayCount:      days,
		Reason:        "family trip",
	})
	require.NoError(t, err)
	return request
}

func TestLeaveRequestRepository_CreateGetDecide(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	created := createPending(t, ctx, repo, "u-emp", 3)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.Nil(t, created.DecidedBy)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", got.StartDate.Format(leave.DateLayout))
	assert.Equal(t, 3, got.DayCount)

	decided, err := repo.Decide(ctx, created.ID, leave.LeaveRequestStatusApproved, "u-mgr", time.Now())
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "u-mgr", *decided.DecidedBy)

	_, err = repo.Decide(ctx, created.ID, leave.LeaveRequestStatusRejected, "u-hr", time.Now())
	assert.ErrorIs(t, err, leave.ErrInvalidStateTransition)

	_, err = repo.Decide(ctx, "8f14e45f-ceea-467f-a0e6-5b6a2f3e2d11", leave.LeaveRequestStatusRejected, "u-hr", time.Now())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_ConcurrentDecide(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	created := createPending(t, ctx, repo, "u-emp", 1)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.WithTransaction(ctx, func(ctx context.Context) error {
				_, err := repo.Decide(ctx, created.ID, leave.LeaveRequestStatusApproved, "u-mgr", time.Now())
				return err
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, leave.ErrInvalidStateTransition)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestTransactor_RollbackUndoesDecision(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	requests := postgresql.NewLeaveRequestRepository(setup.DB)
	balances := postgresql.NewLeaveBalanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	created := createPending(t, ctx, requests, "u-emp", 2)

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := requests.Decide(ctx, created.ID, leave.LeaveRequestStatusApproved, "u-mgr", time.Now()); err != nil {
			return err
		}
		if _, err := balances.GetOrCreate(ctx, "u-emp", 2025, 25); err != nil {
			return err
		}
		if _, err := balances.AddUsedDays(ctx, "u-emp", 2025, 2); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := requests.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPending())

	_, err = balances.AddUsedDays(ctx, "u-emp", 2025, 1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestLeaveBalanceRepository_GetOrCreateAndConsume(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	balances := postgresql.NewLeaveBalanceRepository(setup.DB)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			balance, err := balances.GetOrCreate(ctx, "u-emp", 2025, 25)
			assert.NoError(t, err)
			assert.Equal(t, 25, balance.TotalDays)
		}()
	}
	wg.Wait()

	// a later allotment does not overwrite the stored row
	balance, err := balances.GetOrCreate(ctx, "u-emp", 2025, 30)
	require.NoError(t, err)
	assert.Equal(t, 25, balance.TotalDays)

	balance, err = balances.AddUsedDays(ctx, "u-emp", 2025, 27)
	require.NoError(t, err)
	assert.Equal(t, 27, balance.UsedDays)
	assert.Equal(t, -2, balance.RemainingDays())

	stored, err := balances.Get(ctx, "u-emp", 2025)
	require.NoError(t, err)
	assert.Equal(t, 27, stored.UsedDays)

	_, err = balances.Get(ctx, "u-emp", 2024)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestReplyAndUserRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	requests := postgresql.NewLeaveRequestRepository(setup.DB)
	replies := postgresql.NewReplyRepository(setup.DB)
	users := postgresql.NewUserRepository(setup.DB)

	created := createPending(t, ctx, requests, "u-emp", 1)
	for _, message := range []string{"first", "second"} {
		_, err := replies.Create(ctx, leave.Reply{LeaveRequestID: created.ID, Message: message, AuthorName: "Hana HR"})
		require.NoError(t, err)
	}
	_, err := replies.Create(ctx, leave.Reply{LeaveRequestID: "8f14e45f-ceea-467f-a0e6-5b6a2f3e2d11", Message: "x", AuthorName: "Hana HR"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	threads, err := replies.ListByRequestIDs(ctx, []string{created.ID})
	require.NoError(t, err)
	require.Len(t, threads[created.ID], 2)
	assert.Equal(t, "first", threads[created.ID][0].Message)

	_, err = users.Upsert(ctx, user.User{ID: "u-emp", FirstName: "Eve", Role: user.RoleEmployee, Department: user.DepartmentSales})
	require.NoError(t, err)
	_, err = users.Upsert(ctx, user.User{ID: "u-mgr", FirstName: "Sam", Role: user.RoleManager, Department: user.DepartmentSales})
	require.NoError(t, err)

	departments, err := users.GetDepartments(ctx, []string{"u-emp", "u-ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]user.Department{"u-emp": user.DepartmentSales}, departments)

	count, err := users.CountDepartments(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = users.GetByID(ctx, "u-ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
