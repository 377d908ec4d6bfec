package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/config"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/dashboard"
	leaveDomain "github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hr-portal-backend-go/internal/repository/redis"
)

// storage bundles the repositories of the configured driver
type storage struct {
	transactor leaveDomain.Transactor
	requests   leaveDomain.LeaveRequestRepository
	replies    leaveDomain.ReplyRepository
	balances   leaveDomain.LeaveBalanceRepository
	directory  user.Directory
	dashboard  dashboard.DashboardRepository
	checks     map[string]appHTTP.Check
	closers    []func()
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	s := &storage{checks: make(map[string]appHTTP.Check)}
	var users user.UserRepository

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		slog.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		s.transactor = memory.NewTransactor(store)
		s.requests = memory.NewLeaveRequestRepository(store)
		s.replies = memory.NewReplyRepository(store)
		s.balances = memory.NewLeaveBalanceRepository(store)
		users = memory.NewUserRepository(store)
		s.dashboard = memory.NewDashboardRepository(store)

	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		s.closers = append(s.closers, db.Close)

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			s.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}

		s.transactor = postgresql.NewTransactor(db)
		s.requests = postgresql.NewLeaveRequestRepository(db)
		s.replies = postgresql.NewReplyRepository(db)
		s.balances = postgresql.NewLeaveBalanceRepository(db)
		users = postgresql.NewUserRepository(db)
		s.dashboard = postgresql.NewDashboardRepository(db)
		s.checks["postgres"] = db.Ping

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	s.directory = users
	if err := seedUsers(ctx, users, cfg.Storage.SeedUsers); err != nil {
		s.Close()
		return nil, err
	}

	if cfg.Redis.Addr != "" {
		client, err := redisRepo.Connect(ctx, redisRepo.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, func() { _ = client.Close() })

		s.directory = redisRepo.NewDepartmentCache(s.directory, client, cfg.Redis.TTL)
		s.checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		slog.Info("department cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	return s, nil
}

func seedUsers(ctx context.Context, users user.UserRepository, entries []string) error {
	for _, entry := range entries {
		u, err := user.ParseSeed(entry)
		if err != nil {
			return err
		}
		if _, err := users.Upsert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	if len(entries) > 0 {
		slog.Info("user directory seeded", "count", len(entries))
	}
	return nil
}
