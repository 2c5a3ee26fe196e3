// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kevinhagel/northstar-funding-sub000/internal/antispam"
	"github.com/kevinhagel/northstar-funding-sub000/internal/api"
	"github.com/kevinhagel/northstar-funding-sub000/internal/blacklist"
	"github.com/kevinhagel/northstar-funding-sub000/internal/config"
	"github.com/kevinhagel/northstar-funding-sub000/internal/llmclient"
	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/metrics"
	"github.com/kevinhagel/northstar-funding-sub000/internal/monitoring"
	"github.com/kevinhagel/northstar-funding-sub000/internal/observability"
	"github.com/kevinhagel/northstar-funding-sub000/internal/orchestrator"
	"github.com/kevinhagel/northstar-funding-sub000/internal/processor"
	"github.com/kevinhagel/northstar-funding-sub000/internal/querygen"
	"github.com/kevinhagel/northstar-funding-sub000/internal/scoring"
	pg_store "github.com/kevinhagel/northstar-funding-sub000/internal/store/postgres"
)

func main() {
	log.Println("Starting discovery pipeline server...")

	envPaths := []string{".env", filepath.Join("..", ".env")}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			log.Printf("loaded environment variables from %s", p)
			break
		}
	}

	appConfig, err := config.LoadWithEnv("", "")
	if err != nil {
		log.Printf("warning: failed to load config file: %v; using defaults and environment", err)
		appConfig = config.DefaultConfig()
	}
	if sets, err := config.LoadKeywordSets("."); err != nil {
		log.Printf("no keyword sets loaded: %v", err)
	} else {
		config.ApplyKeywordSets(appConfig, sets)
		log.Printf("applied %d keyword set(s) to processor/scorer tables", len(sets))
	}

	logger := logging.NewSimpleLogger()

	if tp, err := observability.InitTracer("discovery-pipeline", os.Getenv("TRACING_BACKEND_URL")); err != nil {
		log.Printf("warning: tracing disabled: %v", err)
	} else if tp != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	db, err := sqlx.Connect("pgx", appConfig.Server.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: could not connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(appConfig.Server.DBMaxOpenConns)
	db.SetMaxIdleConns(appConfig.Server.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(appConfig.Server.DBConnMaxLifetimeMinutes) * time.Minute)
	log.Println("connected to PostgreSQL")

	discoveryStore := pg_store.NewDiscoveryStorePostgres(db)

	llm := llmclient.New(appConfig.LLMClientConfig())
	queryService := querygen.New(appConfig.QueryGenConfig(), llm, discoveryStore, logger)
	blacklistCache := blacklist.New(appConfig.BlacklistConfig(), discoveryStore, logger)
	spamFilter := antispam.New(appConfig.AntispamConfig())
	scorer := scoring.New(appConfig.ScoringConfig())
	adapterRegistry := appConfig.SearchAdapterRegistry()

	processor.ConfidenceThreshold = appConfig.ConfidenceThreshold()
	proc := processor.New(spamFilter, blacklistCache, scorer, discoveryStore, logger)

	orchCfg := orchestrator.Config{
		MaxQueriesPerEngine: appConfig.Workflow.MaxQueriesPerEngine,
		TotalTimeout:        appConfig.Workflow.TotalTimeout,
	}
	monitor := monitoring.NewResourceMonitor()
	metricsReg := prometheus.NewRegistry()
	metricsRegistry := metrics.New(metricsReg)

	orch := orchestrator.New(orchCfg, queryService, adapterRegistry, proc, discoveryStore, logger).
		WithMonitor(monitor).
		WithMetrics(metricsRegistry)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()
	go monitor.StartMonitoring(rootCtx)

	handlers := api.NewHandlers(orch, discoveryStore, monitor, logger)
	router := api.NewRouter(handlers, metricsReg, logger, appConfig.Server.GinMode)

	srv := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()
	log.Printf("server listening on %s (gin mode %s)", srv.Addr, appConfig.Server.GinMode)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	rootCancel()
	monitor.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited gracefully")
}
