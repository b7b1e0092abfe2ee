package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devicelicense/config"
	"devicelicense/database"
	_ "devicelicense/docs" // Swagger 문서
	"devicelicense/handlers"
	"devicelicense/logger"
	"devicelicense/metrics"
	"devicelicense/ratelimit"
	"devicelicense/scheduler"
	"devicelicense/services"
	"devicelicense/utils"
)

const version = "1.0.0"

// @title Device License Server API
// @version 1.0
// @description 디바이스 바인딩 라이선스 활성화/검증 서버

// @contact.name API Support

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT 토큰을 입력하세요. 형식: Bearer {token}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// 로거 초기화
	if err := logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(cfg.Log.Level),
		LogDir:   cfg.Log.Dir,
		MaxSize:  cfg.Log.MaxSize,
		MaxAge:   cfg.Log.MaxAge,
		UseColor: cfg.Log.UseColor,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("Device License Server %s starting", version)
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := database.Initialize(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 서비스 계층 초기화
	store := services.NewLicenseStore(services.NewSQLExecutor(database.DB), database.Type())
	activationTokens := utils.NewActivationTokenCodec(cfg.Token.Secret, cfg.Token.TTL)
	adminTokens := utils.NewAdminTokenCodec(cfg.Token.Secret, cfg.Token.AdminTTL)

	adminService := services.NewAdminService(store, adminTokens)
	if _, err := adminService.EnsureBootstrapAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
		logger.Fatal("Failed to bootstrap admin account: %v", err)
	}

	limiter, sweeper, closeLimiter, err := newLimiter(ctx, cfg.RateLimit)
	if err != nil {
		logger.Fatal("Failed to initialize rate limiter: %v", err)
	}
	defer closeLimiter()

	m := metrics.New()
	router := handlers.NewRouter(handlers.RouterDeps{
		License: handlers.NewLicenseHandler(
			services.NewActivationService(store, activationTokens, services.ActivationOptions{
				HashSalt:  cfg.Device.HashSalt,
				GraceDays: cfg.Grace.Days,
			}),
			services.NewValidationService(store, activationTokens, nil),
			m,
		),
		Auth:        handlers.NewAuthHandler(adminService),
		Admin:       handlers.NewAdminLicenseHandler(services.NewLicenseAdminService(store), adminService),
		AdminUsers:  handlers.NewAdminUserHandler(adminService),
		Releases:    handlers.NewReleaseHandler(services.NewReleaseService(services.NewSQLExecutor(database.DB)), adminService),
		Health:      handlers.NewHealthHandler(database.DB, version),
		AdminTokens: adminTokens,
		Limiter:     limiter,
		Limits: handlers.RateLimits{
			ActivatePerWindow: cfg.RateLimit.ActivatePerWindow,
			ValidatePerWindow: cfg.RateLimit.ValidatePerWindow,
			Window:            cfg.RateLimit.Window,
			TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
		},
		Metrics: m,
	})

	// 유지보수 스케줄러 (만료 라이선스 리포트, 리미터 정리)
	sched := scheduler.New(store, sweeper, scheduler.Options{
		ReportInterval: time.Hour,
		SweepInterval:  cfg.RateLimit.SweepInterval,
	})
	sched.Start(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening on http://localhost%s", server.Addr)
		logger.Info("Swagger UI: http://localhost%s/swagger/index.html", server.Addr)
		logger.Info("Database: %s", database.Type())
		logger.Info("Rate limiter: %s", cfg.RateLimit.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("Server failed to start: %v", err)
		}
	case <-ctx.Done():
		logger.Warn("Received shutdown signal")
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}
	stop()
	sched.Wait()
	logger.Info("Server stopped")
}

// newLimiter 설정에 맞는 레이트 리미터 생성. 메모리 리미터만 주기적 정리가 필요합니다.
func newLimiter(ctx context.Context, cfg config.RateLimitConfig) (ratelimit.Limiter, scheduler.Sweeper, func(), error) {
	if cfg.Backend == "redis" {
		rl, err := ratelimit.NewRedisLimiter(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := rl.Ping(ctx); err != nil {
			rl.Close()
			return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return rl, nil, func() { rl.Close() }, nil
	}

	ml := ratelimit.NewMemoryLimiter()
	return ml, ml, func() {}, nil
}
