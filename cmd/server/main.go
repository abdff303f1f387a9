package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
	"ledger-engine/internal/database"
	"ledger-engine/internal/handlers"
	"ledger-engine/internal/middleware"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"
	"ledger-engine/internal/scheduler"
	"ledger-engine/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.JWT.PublicKey == nil {
		logger.Warn("JWT_PUBLIC_KEY not set, authenticated endpoints will reject every token")
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("database initialization failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Bank.Location
	clk := clock.New(loc)
	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	approvalRepo := repositories.NewApprovalRequestRepository(db)
	deviceRepo := repositories.NewMobileDeviceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db, repositories.NewKeyedLock())

	// Services
	auditService := services.NewAuditService(auditRepo, logger)
	verifier := services.NewSignatureVerifier(deviceRepo, clk, logger)
	approvalService := services.NewApprovalService(approvalRepo, deviceRepo, verifier, auditService, metrics, &cfg.Approval, clk, logger)
	deviceService := services.NewDeviceService(deviceRepo, auditService, clk, logger)
	ledgerService := services.NewLedgerService(ledgerRepo, accountRepo, transactionRepo, auditService, metrics, logger)
	accountService := services.NewAccountService(accountRepo, membershipRepo, transactionRepo, userRepo, ledgerRepo, approvalService, auditService, clk, &cfg.Bank, logger)
	paymentService := services.NewPaymentService(paymentRepo, accountRepo, membershipRepo, ledgerRepo, approvalService, auditService, metrics, clk, &cfg.Bank, &cfg.Scheduler, logger)
	interestService := services.NewInterestService(accountRepo, ledgerRepo, auditService, metrics, clk, loc, logger)

	approvalService.RegisterHandler(models.ApprovalKindPaymentCreate, paymentService)
	approvalService.RegisterHandler(models.ApprovalKindPaymentUpdate, paymentService)
	approvalService.RegisterHandler(models.ApprovalKindPaymentCancel, paymentService)
	approvalService.RegisterHandler(models.ApprovalKindAccountClose, accountService)

	// Scheduler
	sched := scheduler.New(clk, metrics, cfg.Scheduler.TickInterval, logger)
	if err := scheduler.RegisterLedgerJobs(sched, &cfg.Scheduler, loc, scheduler.Dependencies{
		Payments:  paymentService,
		Interest:  interestService,
		Approvals: approvalService,
		Audit:     auditService,
	}); err != nil {
		logger.Error("failed to register scheduled jobs", "error", err)
		os.Exit(1)
	}

	schedulerDone := make(chan struct{})
	if cfg.Scheduler.Enabled {
		go func() {
			defer close(schedulerDone)
			sched.Start(ctx)
		}()
	} else {
		logger.Info("scheduler disabled, jobs run only through the admin API")
		close(schedulerDone)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	go rateLimiter.Run(ctx)

	// HTTP
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.BodyLimit("1M"))

	healthHandler := handlers.NewHealthCheckHandler(db, clk)
	accountHandler := handlers.NewAccountHandler(accountService, loc)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)
	deviceHandler := handlers.NewDeviceHandler(deviceService)
	adminHandler := handlers.NewAdminHandler(ledgerService, auditService, userRepo, sched)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	// The mobile device authenticates with its signature, not a bearer token.
	mobile := api.Group("/mobile", rateLimiter.Middleware())
	mobile.POST("/approvals/inspect", approvalHandler.Inspect)
	mobile.POST("/approvals/resolve", approvalHandler.Resolve)

	authed := api.Group("", middleware.RequireAuth(&cfg.JWT))

	authed.POST("/accounts", accountHandler.CreateAccount)
	authed.GET("/accounts", accountHandler.ListMyAccounts)
	authed.GET("/accounts/:accountId", accountHandler.GetAccount)
	authed.PATCH("/accounts/:accountId", accountHandler.UpdateAccount)
	authed.POST("/accounts/:accountId/close", accountHandler.CloseAccount)
	authed.GET("/accounts/:accountId/transactions", accountHandler.ListTransactions)
	authed.GET("/accounts/:accountId/payments", paymentHandler.ListPayments)
	authed.GET("/accounts/:accountId/payments/pending", paymentHandler.ListPendingPayments)
	authed.PUT("/transactions/:transactionId/note", accountHandler.UpdateTransactionNote)

	authed.POST("/payments", paymentHandler.CreatePayment)
	authed.GET("/payments/:paymentId", paymentHandler.GetPayment)
	authed.PATCH("/payments/:paymentId", paymentHandler.UpdatePayment)
	authed.DELETE("/payments/:paymentId", paymentHandler.CancelPayment)

	authed.GET("/approvals", approvalHandler.ListPending)
	authed.POST("/approvals/generic", approvalHandler.CreateGenericChallenge)

	authed.POST("/devices", deviceHandler.RegisterDevice)
	authed.GET("/devices", deviceHandler.ListDevices)
	authed.DELETE("/devices/:deviceId", deviceHandler.RevokeDevice)

	admin := authed.Group("/admin", middleware.RequireAdmin())
	admin.POST("/accounts", accountHandler.CreateAccount)
	admin.GET("/accounts", accountHandler.ListAccounts)
	admin.DELETE("/accounts/:accountId", accountHandler.AdminCloseAccount)
	admin.POST("/accounts/:accountId/credit", adminHandler.Credit)
	admin.POST("/accounts/:accountId/debit", adminHandler.Debit)
	admin.GET("/accounts/:accountId/verify", adminHandler.VerifyHistory)
	admin.POST("/payments", paymentHandler.AdminCreatePayment)
	admin.PATCH("/payments/:paymentId", paymentHandler.AdminUpdatePayment)
	admin.DELETE("/payments/:paymentId", paymentHandler.AdminCancelPayment)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:userId/audit", adminHandler.GetUserActivity)
	admin.GET("/audit/:resource/:resourceId", adminHandler.GetResourceHistory)
	admin.GET("/jobs", adminHandler.ListJobs)
	admin.POST("/jobs/:name/run", adminHandler.RunJob)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("server starting", "env", cfg.Server.Environment, "addr", addr)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	select {
	case <-schedulerDone:
	case <-shutdownCtx.Done():
		logger.Warn("scheduled jobs still running at shutdown timeout")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		} else {
			logger.Info("database connection closed")
		}
	}

	logger.Info("server exited")
}
