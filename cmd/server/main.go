package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"ziwei/internal/analysis"
	"ziwei/internal/audit"
	"ziwei/internal/chart/engineclient"
	charthandler "ziwei/internal/chart/handler"
	chartmetrics "ziwei/internal/chart/metrics"
	chartservice "ziwei/internal/chart/service"
	chartstore "ziwei/internal/chart/store"
	"ziwei/internal/feedback"
	ziweihttp "ziwei/internal/http"
	"ziwei/internal/platform/config"
	"ziwei/internal/platform/httpserver"
	"ziwei/internal/platform/logger"
	platformmetrics "ziwei/internal/platform/metrics"
	platformredis "ziwei/internal/platform/redis"
	"ziwei/internal/reading"
)

const auditInboxSize = 256

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache: Redis when configured, in-process otherwise.
	var cache chartstore.Cache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable, falling back to in-memory cache", "error", err)
	}
	if redisClient != nil {
		cache = chartstore.NewRedisCache(redisClient.Client)
		defer redisClient.Close()
		log.Info("chart cache backed by redis")
	} else {
		cache = chartstore.NewInMemoryCache(256)
		log.Info("chart cache in memory")
	}

	// Feedback store: Postgres when a DSN is configured.
	var feedbackStore feedback.Store
	var db *sql.DB
	if cfg.Feedback.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.Feedback.PostgresDSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
		} else {
			pg := feedback.NewPostgresStore(db)
			if err := pg.EnsureSchema(ctx); err != nil {
				log.Error("postgres schema setup failed, feedback stays in memory", "error", err)
				db.Close()
				db = nil
			} else {
				feedbackStore = pg
				defer db.Close()
				log.Info("feedback store backed by postgres")
			}
		}
	}
	if feedbackStore == nil {
		feedbackStore = feedback.NewInMemoryStore()
		log.Info("feedback store in memory")
	}

	// Audit trail: Kafka sink when brokers are configured.
	var auditStore audit.Store
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(cfg.Kafka)
		if err != nil {
			log.Error("kafka unavailable, audit trail stays in memory", "error", err)
		} else {
			auditStore = kafkaStore
			defer kafkaStore.Close()
			log.Info("audit trail backed by kafka", "topic", cfg.Kafka.Topic)
		}
	}
	if auditStore == nil {
		auditStore = audit.NewInMemoryStore(0)
	}

	inbox := make(chan audit.Event, auditInboxSize)
	publisher := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(auditStore, inbox, log)

	// Feature wiring.
	httpMetrics := platformmetrics.New()
	charts := chartservice.New(
		engineclient.New(cfg.Engine),
		cache,
		cfg.Cache.TTL,
		cfg.Cache.RecentN,
		chartservice.WithMetrics(chartmetrics.New()),
		chartservice.WithAuditPublisher(publisher),
		chartservice.WithLogger(log),
	)
	readings := reading.NewService(reading.NarratorFromConfig(cfg.Reading), publisher, log)
	feedbackSvc := feedback.NewService(feedbackStore, publisher, log)

	router := ziweihttp.New(ziweihttp.Deps{
		Charts:     charthandler.New(charts, log),
		Analysis:   analysis.NewHandler(),
		Reading:    reading.NewHandler(readings, log),
		Feedback:   feedback.NewHandler(feedbackSvc, log),
		Metrics:    httpMetrics,
		AdminToken: cfg.AdminToken,
		Health:     healthCheck(redisClient, db),
		Logger:     log,
	})

	server := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := worker.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
	}
	log.Info("shutdown complete")
}

func healthCheck(redisClient *platformredis.Client, db *sql.DB) func() map[string]string {
	return func() map[string]string {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		health := map[string]string{}
		if redisClient != nil {
			health["redis"] = "ok"
			if err := redisClient.Health(ctx); err != nil {
				health["redis"] = "unreachable"
			}
		}
		if db != nil {
			health["postgres"] = "ok"
			if err := db.PingContext(ctx); err != nil {
				health["postgres"] = "unreachable"
			}
		}
		return health
	}
}
