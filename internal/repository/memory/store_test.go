package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPending(t *testing.T, repo leave.LeaveRequestRepository, requesterID string) leave.LeaveRequest {
	t.Helper()
	request, err := repo.Create(context.Background(), leave.LeaveRequest{
		RequesterID: requesterID,
		LeaveType:   leave.LeaveTypeSick,
		StartDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		DayCount:    2,
		Reason:      "flu",
		Status:      leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	return request
}

func TestTransactor_RollbackRestoresEveryWrite(t *testing.T) {
	store := NewStore()
	requests := NewLeaveRequestRepository(store)
	balances := NewLeaveBalanceRepository(store)
	replies := NewReplyRepository(store)
	tx := NewTransactor(store)
	ctx := context.Background()

	request := newPending(t, requests, "u1")
	_, err := balances.GetOrCreate(ctx, "u1", 2025, 25)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := requests.Decide(ctx, request.ID, leave.LeaveRequestStatusApproved, "u2", time.Now())
		require.NoError(t, err)
		_, err = balances.AddUsedDays(ctx, "u1", 2025, 2)
		require.NoError(t, err)
		_, err = balances.GetOrCreate(ctx, "u1", 2026, 25)
		require.NoError(t, err)
		_, err = replies.Create(ctx, leave.Reply{LeaveRequestID: request.ID, Message: "ok", AuthorName: "HR"})
		require.NoError(t, err)
		created := newPendingIn(t, ctx, requests, "u3")
		assert.NotEmpty(t, created.ID)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPending())
	assert.Nil(t, got.DecidedBy)

	balance, err := balances.GetOrCreate(ctx, "u1", 2025, 25)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.UsedDays)

	_, err = balances.AddUsedDays(ctx, "u1", 2026, 1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	_, err = balances.Get(ctx, "u1", 2026)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
	stored, err := balances.Get(ctx, "u1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.TotalDays)

	threads, err := replies.ListByRequestIDs(ctx, []string{request.ID})
	require.NoError(t, err)
	assert.Empty(t, threads)

	all, err := requests.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func newPendingIn(t *testing.T, ctx context.Context, repo leave.LeaveRequestRepository, requesterID string) leave.LeaveRequest {
	t.Helper()
	request, err := repo.Create(ctx, leave.LeaveRequest{
		RequesterID: requesterID,
		LeaveType:   leave.LeaveTypePersonal,
		DayCount:    1,
		Reason:      "errand",
		Status:      leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	return request
}

func TestTransactor_CommitKeepsWritesAndNestedJoins(t *testing.T) {
	store := NewStore()
	requests := NewLeaveRequestRepository(store)
	tx := NewTransactor(store)
	ctx := context.Background()

	request := newPending(t, requests, "u1")

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		return tx.WithTransaction(ctx, func(ctx context.Context) error {
			_, err := requests.Decide(ctx, request.ID, leave.LeaveRequestStatusRejected, "u2", time.Now())
			return err
		})
	})
	require.NoError(t, err)

	got, err := requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, got.Status)
	require.NotNil(t, got.DecidedBy)
	assert.Equal(t, "u2", *got.DecidedBy)
}

func TestLeaveRequestRepository_DecideOnlyFromPending(t *testing.T) {
	store := NewStore()
	requests := NewLeaveRequestRepository(store)
	ctx := context.Background()

	request := newPending(t, requests, "u1")
	first, err := requests.Decide(ctx, request.ID, leave.LeaveRequestStatusApproved, "m1", time.Now())
	require.NoError(t, err)

	_, err = requests.Decide(ctx, request.ID, leave.LeaveRequestStatusRejected, "m2", time.Now())
	assert.ErrorIs(t, err, leave.ErrInvalidStateTransition)

	got, err := requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, got.Status)
	assert.Equal(t, "m1", *got.DecidedBy)
	assert.True(t, first.DecidedAt.Equal(*got.DecidedAt))

	_, err = requests.Decide(ctx, "missing", leave.LeaveRequestStatusApproved, "m1", time.Now())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_ListNewestFirst(t *testing.T) {
	store := NewStore()
	requests := NewLeaveRequestRepository(store)
	ctx := context.Background()

	first := newPending(t, requests, "u1")
	second := newPending(t, requests, "u2")
	third := newPending(t, requests, "u3")
	_, err := requests.Decide(ctx, second.ID, leave.LeaveRequestStatusApproved, "m1", time.Now())
	require.NoError(t, err)

	all, err := requests.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending := leave.LeaveRequestStatusPending
	onlyPending, err := requests.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, onlyPending, 2)
	assert.Equal(t, third.ID, onlyPending[0].ID)
}

func TestReplyRepository_AppendOnlyOrder(t *testing.T) {
	store := NewStore()
	requests := NewLeaveRequestRepository(store)
	replies := NewReplyRepository(store)
	ctx := context.Background()

	request := newPending(t, requests, "u1")
	for _, message := range []string{"first", "second", "third"} {
		_, err := replies.Create(ctx, leave.Reply{LeaveRequestID: request.ID, Message: message, AuthorName: "HR"})
		require.NoError(t, err)
	}

	_, err := replies.Create(ctx, leave.Reply{LeaveRequestID: "missing", Message: "x"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	threads, err := replies.ListByRequestIDs(ctx, []string{request.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, threads[request.ID], 3)
	assert.Equal(t, "first", threads[request.ID][0].Message)
	assert.Equal(t, "third", threads[request.ID][2].Message)
	assert.NotContains(t, threads, "missing")
}

func TestUserRepository_DirectoryAndCounts(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)
	ctx := context.Background()

	for _, u := range []user.User{
		{ID: "u1", FirstName: "Eve", Role: user.RoleEmployee, Department: user.DepartmentSales},
		{ID: "u2", FirstName: "Sam", Role: user.RoleManager, Department: user.DepartmentSales},
		{ID: "u3", FirstName: "Paul", Role: user.RoleEmployee, Department: user.DepartmentProduction},
	} {
		_, err := users.Upsert(ctx, u)
		require.NoError(t, err)
	}

	departments, err := users.GetDepartments(ctx, []string{"u1", "u3", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]user.Department{"u1": user.DepartmentSales, "u3": user.DepartmentProduction}, departments)

	_, err = users.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	deptCount, err := users.CountDepartments(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deptCount)
}
