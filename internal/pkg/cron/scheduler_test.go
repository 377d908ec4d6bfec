package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/repository/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	var order []string
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		order = append(order, "a")
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		order = append(order, "b")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"a", "b"}, order)

	// Stop without Start is a no-op
	s.Stop()
}

func TestScheduler_IgnoresNonPositiveInterval(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	count := func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}
	s.AddJob("zero", 0, count)
	s.AddJob("negative", -time.Second, count)

	assert.NotPanics(t, func() { s.Start(context.Background()) })
	s.Stop()
	s.RunOnce(context.Background())
	assert.Equal(t, int32(0), runs.Load())
}

func TestLeaveJobs_RefreshStatusGauges(t *testing.T) {
	store := memory.NewStore()
	requests := memory.NewLeaveRequestRepository(store)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := requests.Create(ctx, leave.LeaveRequest{
			RequesterID:   "u-emp",
			RequesterName: "Eka",
			LeaveType:     leave.LeaveTypeVacation,
			StartDate:     start,
			EndDate:       start,
			DayCount:      1,
			Reason:        "rest",
			Status:        leave.LeaveRequestStatusPending,
		})
		require.NoError(t, err)
	}
	list, err := requests.List(ctx, nil)
	require.NoError(t, err)
	_, err = requests.Decide(ctx, list[0].ID, leave.LeaveRequestStatusApproved, "u-hr", start)
	require.NoError(t, err)

	jobs := NewLeaveJobs(memory.NewDashboardRepository(store))
	require.NoError(t, jobs.RefreshStatusGauges(ctx))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.LeaveRequestsByStatus.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LeaveRequestsByStatus.WithLabelValues("approved")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.LeaveRequestsByStatus.WithLabelValues("rejected")))
}
