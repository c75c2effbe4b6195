package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpadp "charity-fund-backend/internal/adapter/http"
	mw "charity-fund-backend/internal/adapter/middleware"
	"charity-fund-backend/internal/adapter/repository/mysql"
	"charity-fund-backend/internal/config"
	domainlock "charity-fund-backend/internal/domain/lock"
	"charity-fund-backend/internal/infrastructure/cache"
	"charity-fund-backend/internal/infrastructure/db"
	"charity-fund-backend/internal/infrastructure/lock"
	"charity-fund-backend/internal/infrastructure/logging"
	donationuc "charity-fund-backend/internal/usecase/donation"
	"charity-fund-backend/internal/usecase/investing"
	projectuc "charity-fund-backend/internal/usecase/project"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Development())
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle")
	}
	defer sqlDB.Close()

	h := httpadp.NewHandler().WithCheck("db", sqlDB.PingContext)

	var (
		locker domainlock.Locker = lock.NewLocalLocker()
		rdb    *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("open redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL())
		h.WithCheck("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		log.Warn().Msg("REDIS_ADDR not set: in-process locks, idempotency disabled")
	}

	inv := investing.NewService(mysql.NewGormUoW(gdb), locker, log)
	projects := httpadp.NewProjectHandler(projectuc.NewUsecase(mysql.NewProjectRepository(gdb), inv))
	donations := httpadp.NewDonationHandler(donationuc.NewUsecase(mysql.NewDonationRepository(gdb), inv))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(mw.RequestID(), mw.RequestLogger(log), echomw.Recover())
	e.Use(echomw.ContextTimeout(cfg.LockTTL()))
	if rdb != nil {
		e.Use(mw.Idempotency(rdb, cfg.IdempotencyTTL()))
	}
	httpadp.Register(e, h, projects, donations)

	go serve(e, ":"+cfg.AppPort, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func serve(e *echo.Echo, addr string, log zerolog.Logger) {
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server")
	}
}
