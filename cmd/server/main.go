// veripass serves the Digital Product Passport backend: thin CRUD over
// products and compliance profiles, the scheduled compliance verification
// pipeline, and the append-only audit trail.
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

	"veripass/internal/catalog"
	cataloghandler "veripass/internal/catalog/handler"
	"veripass/internal/platform/config"
	"veripass/internal/platform/httpserver"
	"veripass/internal/platform/logger"
	"veripass/internal/platform/metrics"
	"veripass/internal/platform/postgres"
	platformredis "veripass/internal/platform/redis"
	"veripass/internal/profile"
	profilehandler "veripass/internal/profile/handler"
	httptransport "veripass/internal/transport/http"
	"veripass/internal/verification"
	verificationhandler "veripass/internal/verification/handler"
	verificationmetrics "veripass/internal/verification/metrics"
	"veripass/pkg/platform/audit"
	"veripass/pkg/platform/audit/relay"
	auditmemory "veripass/pkg/platform/audit/store/memory"
	auditpostgres "veripass/pkg/platform/audit/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	var (
		productStore catalog.Store
		profileStore profile.Store
		auditStore   audit.Store
		outbox       *auditpostgres.Store
	)
	if db != nil {
		productStore = catalog.NewPostgresStore(db)
		profileStore = profile.NewPostgresStore(db)
		outbox = auditpostgres.New(db)
		auditStore = outbox
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		productStore = catalog.NewInMemoryStore()
		profileStore = profile.NewInMemoryStore()
		auditStore = auditmemory.New()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		profileStore = profile.NewCachedStore(profileStore, redisClient, log)
	}

	auditor := audit.NewPublisher(auditStore)
	appMetrics := metrics.New()

	if cfg.NarrativeURL == "" {
		log.Warn("NARRATIVE_VERIFIER_URL not set, narrative checks will fail closed")
	}
	narrative := verification.NewHTTPNarrativeVerifier(cfg.NarrativeURL, cfg.NarrativeAPIKey, cfg.NarrativeTimeout)
	evaluator := verification.NewEvaluator(verification.NewRegistry())
	orchestrator := verification.NewOrchestrator(
		profileStore,
		productStore,
		evaluator,
		narrative,
		auditor,
		log,
		verificationmetrics.New(),
		verification.WithConcurrency(cfg.VerifyConcurrency),
	)

	if len(cfg.KafkaBrokers) > 0 && outbox != nil {
		auditRelay, err := relay.New(cfg.KafkaBrokers, cfg.KafkaTopic, outbox, log)
		if err != nil {
			log.Error("audit relay setup failed", "error", err)
			os.Exit(1)
		}
		defer auditRelay.Close()
		go func() {
			if err := auditRelay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit relay stopped", "error", err)
			}
		}()
	}

	if cfg.VerifyInterval > 0 {
		go runScheduler(ctx, orchestrator, cfg.VerifyInterval, log)
	}

	router := httptransport.New(httptransport.Deps{
		Catalog:      cataloghandler.New(catalog.NewService(productStore, auditor, log, appMetrics), log),
		Profiles:     profilehandler.New(profile.NewService(profileStore, auditor, log, appMetrics), log),
		Verification: verificationhandler.New(orchestrator, log),
		Auditor:      auditor,
		Logger:       log,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting veripass", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// runScheduler triggers verification runs on a fixed interval for
// deployments without an external scheduler.
func runScheduler(ctx context.Context, orchestrator *verification.Orchestrator, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := orchestrator.Run(ctx); err != nil {
				log.Error("scheduled verification run failed", "error", err)
			}
		}
	}
}
