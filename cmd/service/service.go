package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mess-booking/internal/cache"
	"mess-booking/internal/config"
	"mess-booking/internal/database"
	"mess-booking/internal/handler"
	"mess-booking/internal/logging"
	"mess-booking/internal/metrics"
	"mess-booking/internal/router"
	"mess-booking/internal/scheduler"
	"mess-booking/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "mess-booking/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	notifyContext   = signal.NotifyContext
)

func newEcho(cfg *config.Config, log *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()
	e.Validator = handler.NewValidator()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(logging.Middleware(log))
	e.Use(metrics.Middleware())
	return e
}

func run(args []string) error {
	flags := flag.NewFlagSet("service", flag.ContinueOnError)
	migrateDown := flags.Bool("migrate-down", false, "退回所有 migration 後結束，不啟動伺服器")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}
	if *migrateDown {
		if err := rollbackFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 退回失敗: %w", err)
		}
		log.Info("migrations rolled back")
		return nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	tokens := service.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	billing := service.NewBilling(db, cfg.Prices(), cfg.WorkerCount, loc, log.WithField("component", "billing"))

	e := newEcho(cfg, log)
	router.Setup(e, router.Deps{
		DB:         db,
		Cache:      rdb,
		Tokens:     tokens,
		Directory:  service.NewDirectory(db, tokens),
		Menu:       service.NewMenu(db, rdb, cfg.MenuCacheTTL, loc, log.WithField("component", "menu")),
		Ledger:     service.NewLedger(db, loc),
		Billing:    billing,
		LoginLimit: cfg.LoginRateLimit,
		LoginBurst: cfg.LoginRateBurst,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	sched, err := scheduler.New(cfg.BillingSchedule, billing, loc, log.WithField("component", "scheduler"))
	if err != nil {
		return err
	}
	if sched != nil {
		if err := sched.Start(); err != nil {
			return fmt.Errorf("排程啟動失敗: %w", err)
		}
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.ListenAddr) }()
	log.WithField("addr", cfg.ListenAddr).Info("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
