package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sashabaranov/go-openai"

	"regent/internal/admin"
	classificationhandler "regent/internal/classification/handler"
	classificationmetrics "regent/internal/classification/metrics"
	classificationservice "regent/internal/classification/service"
	historyhandler "regent/internal/history/handler"
	historyservice "regent/internal/history/service"
	historystore "regent/internal/history/store"
	"regent/internal/jwttoken"
	nlprofilehandler "regent/internal/nlprofile/handler"
	nlprofileservice "regent/internal/nlprofile/service"
	obstore "regent/internal/obligation/store"
	"regent/internal/platform/config"
	"regent/internal/platform/httpserver"
	"regent/internal/platform/logger"
	platformmetrics "regent/internal/platform/metrics"
	"regent/internal/platform/middleware"
	platformredis "regent/internal/platform/redis"
	ucstore "regent/internal/usecase/store"
	"regent/pkg/platform/audit"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	// Audit trail: Kafka when brokers are configured, in-memory otherwise.
	var sink audit.Sink = audit.NewMemorySink()
	var kafkaSink *audit.KafkaSink
	if len(cfg.KafkaBrokers) > 0 {
		ks, err := audit.NewKafkaSink(cfg.KafkaBrokers, "")
		if err != nil {
			log.Error("kafka audit sink unavailable", "error", err)
			os.Exit(1)
		}
		kafkaSink = ks
		sink = ks
	}
	auditor := audit.NewPublisher(sink, audit.WithAsyncBuffer(256))
	defer auditor.Close()
	if kafkaSink != nil {
		defer kafkaSink.Close()
	}

	// Use-case registry is always hydrated from the bundled YAML.
	useCases := ucstore.NewInMemory()
	if err := ucstore.HydrateFromDir(useCases, cfg.ReferenceDataDir); err != nil {
		log.Error("use-case registry load failed", "error", err)
		os.Exit(1)
	}

	// Obligation catalogue: Postgres when a DSN is configured, memory
	// otherwise. Either way YAML stays the source of truth and the admin
	// reload endpoint re-syncs from it.
	var provider classificationservice.ObligationProvider
	var reloadObligations func(ctx context.Context) error
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := obstore.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("postgres schema setup failed", "error", err)
			os.Exit(1)
		}
		provider = pg
		reloadObligations = func(ctx context.Context) error {
			buckets, milestones, err := obstore.LoadCatalogue(cfg.ReferenceDataDir)
			if err != nil {
				return err
			}
			return pg.Replace(ctx, buckets, milestones)
		}
	} else {
		mem := obstore.NewInMemory()
		provider = mem
		reloadObligations = func(ctx context.Context) error {
			return obstore.HydrateFromDir(mem, cfg.ReferenceDataDir)
		}
	}
	if err := reloadObligations(ctx); err != nil {
		log.Error("obligation catalogue load failed", "error", err)
		os.Exit(1)
	}

	// Analysis history: Redis when configured, memory otherwise.
	var analyses historyservice.Store = historystore.NewInMemory()
	if cfg.RedisAddr != "" {
		rdb, err := platformredis.New(ctx, cfg.RedisAddr)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		analyses = historystore.NewRedis(rdb.Client)
	}

	classifier := classificationservice.NewService(useCases, provider, log,
		classificationservice.WithAuditEmitter(auditor),
		classificationservice.WithMetrics(classificationmetrics.New()),
	)
	history := historyservice.NewService(analyses, log,
		historyservice.WithAuditEmitter(auditor))
	jwtValidator := jwttoken.NewService(cfg.JWTSigningKey)

	reload := func(ctx context.Context) error {
		if err := reloadObligations(ctx); err != nil {
			return err
		}
		return ucstore.HydrateFromDir(useCases, cfg.ReferenceDataDir)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(platformmetrics.New()))
	router.Use(middleware.ContentTypeJSON)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	classificationhandler.New(classifier, log).Register(router)
	historyhandler.New(history, log, jwtValidator).Register(router)
	admin.New(reload, cfg.AdminToken, log, auditor).Register(router)
	if cfg.OpenAIKey != "" {
		extractor := nlprofileservice.NewService(
			openai.NewClient(cfg.OpenAIKey), cfg.OpenAIModel, log,
			nlprofileservice.WithAuditEmitter(auditor))
		nlprofilehandler.New(extractor, log).Register(router)
	}

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting regent", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
