package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/sse"
	dashboardService "github.com/cmlabs-hris/hr-portal-backend-go/internal/service/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/service/leave"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-portal"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)

	balanceService := leave.NewBalanceService(store.balances, cfg.Leave.DefaultTotalDays)
	requestService := leave.NewRequestService(store.transactor, store.requests, balanceService)
	replyService := leave.NewReplyService(store.replies, store.requests)
	leaveService := leave.NewLeaveService(requestService, replyService, balanceService, store.directory, hub)
	dashboardSvc := dashboardService.NewDashboardService(store.dashboard)

	scheduler := cron.NewScheduler()
	leaveJobs := cron.NewLeaveJobs(store.dashboard)
	scheduler.AddJob("leave_status_gauges", time.Minute, leaveJobs.RefreshStatusGauges)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.CORSOrigins,
		},
		JWTService,
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEventHandler(hub, JWTService),
		appHTTP.NewHealthHandler(store.checks),
	)

	// Event streams only end when their request context is cancelled
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancelStreams)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
