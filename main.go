package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/config"
	"github.com/lanedex/lanedex/internal/database"
	internalhttp "github.com/lanedex/lanedex/internal/http"
	"github.com/lanedex/lanedex/internal/ingest"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/metrics"
	"github.com/lanedex/lanedex/internal/pubsub"
	"github.com/lanedex/lanedex/internal/reconciler"
	"github.com/lanedex/lanedex/internal/riot"
)

func main() {
	start := time.Now()
	log.SetFormatter(log.JSONFormatter)
	log.SetLevel(log.InfoLevel)
	log.Info("Starting lanedex service")

	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer teardown()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	store := matchup.New(db)
	catalog := champion.New(db)
	syncer := champion.NewSyncer(catalog, cfg.Riot.DDragonURL)
	riotClient := riot.NewClient(cfg.Riot.APIKey)
	pubsubClient := pubsub.New(cfg.ProjectID)

	ingestSvc := ingest.New(store, catalog, metricsSvc)
	rec := reconciler.New(store, riotClient, metricsSvc, pubsubClient)

	server := internalhttp.NewServer(
		store,
		catalog,
		syncer,
		riotClient,
		ingestSvc,
		rec,
		metricsSvc,
		metricsHandler,
		cfg,
		pubsubClient,
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server,
	}

	go func() {
		log.Info("Listening for requests", "port", cfg.Port)
		metricsSvc.SetStartupTime(time.Since(start).Seconds())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Block until we receive a shutdown signal, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
	log.Info("Shutdown complete")
}
