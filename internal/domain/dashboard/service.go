package dashboard

import "context"

type DashboardService interface {
	// GetStats runs the four counters concurrently
	GetStats(ctx context.Context) (StatsResponse, error)
}
