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

	"users-api/internal/cache"
	"users-api/internal/config"
	"users-api/internal/database"
	"users-api/internal/logger"
	"users-api/internal/middleware"
	"users-api/internal/router"
	"users-api/internal/service"
	"users-api/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	_ "users-api/docs" // 引入 swag 產出的 docs
)

const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = serveUntilSignal
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Pretty)
	ctx := context.Background()

	dsn := cfg.Database.DSN()
	db, err := newPgxPool(ctx, dsn, cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	var cch cache.Cache
	if cfg.Redis.CacheEnabled() {
		cch, err = newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer cch.Close()
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrationsFn(dsn); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
	}

	wp := newWorkerPool(cfg.Worker.Count)
	defer wp.Stop()

	opts := []service.Option{service.WithLogger(log), service.WithWorkers(wp)}
	if cch != nil {
		opts = append(opts, service.WithCache(cch, cfg.Redis.TTL))
	}
	svc := service.NewUserService(db, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.RateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst))

	router.Setup(e, svc, db, cch)

	log.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("cache", cch != nil).
		Int("workers", cfg.Worker.Count).
		Msg("starting server")
	return startServer(e, cfg.Server.Addr(), log)
}

// serveUntilSignal 啟動 HTTP 服務，收到 SIGINT / SIGTERM 後優雅關閉
func serveUntilSignal(e *echo.Echo, addr string, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
