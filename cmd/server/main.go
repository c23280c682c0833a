package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tallyboard/internal/audit"
	audithandler "tallyboard/internal/audit/handler"
	"tallyboard/internal/audit/stream"
	httpapi "tallyboard/internal/http"
	"tallyboard/internal/platform/config"
	"tallyboard/internal/platform/httpserver"
	"tallyboard/internal/platform/logger"
	"tallyboard/internal/platform/postgres"
	platformredis "tallyboard/internal/platform/redis"
	"tallyboard/internal/staff"
	"tallyboard/internal/station"
	stationhandler "tallyboard/internal/station/handler"
	"tallyboard/internal/turnout"
	"tallyboard/internal/turnout/cache"
	turnouthandler "tallyboard/internal/turnout/handler"
	"tallyboard/internal/turnout/metrics"
	"tallyboard/internal/turnout/service"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	stationStore := station.NewPostgres(db)
	turnoutStore := turnout.NewPostgres(db)
	auditStore := audit.NewPostgres(db)
	staffStore := staff.NewPostgres(db)

	seedStations(ctx, stationStore, cfg.StationCount, log)
	seedStaff(ctx, staffStore, log)

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, snapshot cache disabled", "error", err)
	}

	var snapshotCache service.SnapshotCache
	health := map[string]httpapi.HealthFunc{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		snapshotCache = cache.New(redisClient.Client, cfg.Cache.TTL)
		health["redis"] = redisClient.Health
		defer redisClient.Close()
	}

	turnoutMetrics := metrics.New()
	turnoutService := service.New(
		stationStore,
		turnoutStore,
		newTurnoutPostgresTx(db),
		snapshotCache,
		turnoutMetrics,
		log,
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Turnouts:      turnouthandler.New(turnoutService, log),
		Stations:      stationhandler.New(stationStore, log),
		Audit:         audithandler.New(auditStore, log),
		Logger:        log,
		JWTSigningKey: cfg.JWTSigningKey,
		Health:        health,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting tallyboard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if snapshotCache != nil {
		refresher := cache.NewRefresher(turnoutService, cfg.Cache.RefreshInterval, log)
		g.Go(func() error { return refresher.Run(gctx) })
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := stream.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("audit publisher setup failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		if err := publisher.EnsureTopic(ctx); err != nil {
			log.Warn("audit topic setup failed", "topic", cfg.Kafka.Topic, "error", err)
		}
		relay := stream.NewRelay(auditStore, publisher, cfg.Kafka.RelayInterval, log)
		g.Go(func() error { return relay.Run(gctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// seedStations creates the fixed roster once. Failures are logged and
// tolerated so a transient error does not keep the API down; the roster can
// be seeded on the next start.
func seedStations(ctx context.Context, store station.Store, count int, log *slog.Logger) {
	seeded, err := station.Seed(ctx, store, count, station.DefaultName, station.DefaultLocation)
	if err != nil {
		log.Warn("station seed failed", "error", err)
		return
	}
	if seeded {
		log.Info("seeded station roster", "count", count)
	}
}

// seedStaff creates an initial staff member when bootstrap credentials are
// provided. The roster is informational; requests are never blocked on it.
func seedStaff(ctx context.Context, store staff.Store, log *slog.Logger) {
	username := os.Getenv("TALLYBOARD_ADMIN_USERNAME")
	password := os.Getenv("TALLYBOARD_ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	seeded, err := staff.Seed(ctx, store, []staff.SeedMember{{
		Name:     "Administrator",
		Username: username,
		Password: password,
		Role:     "admin",
	}})
	if err != nil {
		log.Warn("staff seed failed", "error", err)
		return
	}
	if seeded {
		log.Info("seeded staff roster", "username", username)
	}
}
