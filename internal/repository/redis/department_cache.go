package redis

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	defaultDepartmentTTL = 10 * time.Minute
	// fetchTimeout bounds a shared directory fetch
	fetchTimeout = 5 * time.Second
)

// DepartmentCache fronts a user.Directory with Redis for department lookups.
// Redis failures fall through to the directory; directory failures are
// returned so visibility can degrade.
// Key format: user:department:<user_id>
type DepartmentCache struct {
	user.Directory
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
}

func NewDepartmentCache(directory user.Directory, client *redis.Client, ttl time.Duration) *DepartmentCache {
	if ttl <= 0 {
		ttl = defaultDepartmentTTL
	}
	return &DepartmentCache{
		Directory: directory,
		client:    client,
		ttl:       ttl,
	}
}

// GetDepartments implements user.Directory.
func (c *DepartmentCache) GetDepartments(ctx context.Context, ids []string) (map[string]user.Department, error) {
	departments := make(map[string]user.Department, len(ids))
	if len(ids) == 0 {
		return departments, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = DepartmentKey(id)
	}

	misses := ids
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		slog.Warn("department cache read failed", "error", err)
	} else {
		misses = make([]string, 0, len(ids))
		for i, value := range values {
			if department, ok := value.(string); ok && user.Department(department).Valid() {
				departments[ids[i]] = user.Department(department)
				continue
			}
			misses = append(misses, ids[i])
		}
	}

	metrics.DepartmentCacheTotal.WithLabelValues("hit").Add(float64(len(ids) - len(misses)))
	metrics.DepartmentCacheTotal.WithLabelValues("miss").Add(float64(len(misses)))
	if len(misses) == 0 {
		return departments, nil
	}

	fetched, err := c.fetch(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, department := range fetched {
		departments[id] = department
	}

	return departments, nil
}

// fetch loads misses from the directory and stores them. Concurrent callers
// missing the same ids share one directory call, which runs detached from any
// single caller's cancellation; each caller still stops waiting on its own ctx.
func (c *DepartmentCache) fetch(ctx context.Context, misses []string) (map[string]user.Department, error) {
	sorted := append([]string(nil), misses...)
	sort.Strings(sorted)

	results := c.sf.DoChan(strings.Join(sorted, ","), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		fetched, err := c.Directory.GetDepartments(fetchCtx, sorted)
		if err != nil {
			return nil, err
		}

		for id, department := range fetched {
			if err := c.client.Set(fetchCtx, DepartmentKey(id), string(department), c.ttl).Err(); err != nil {
				slog.Warn("department cache write failed", "user_id", id, "error", err)
			}
		}
		return fetched, nil
	})

	select {
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(map[string]user.Department), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func DepartmentKey(userID string) string {
	return "user:department:" + userID
}

var _ user.Directory = (*DepartmentCache)(nil)
