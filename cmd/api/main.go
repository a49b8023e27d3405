package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"studio/internal/history"
	"studio/internal/http/handlers"
	httpapi "studio/internal/http/httpapi"
	"studio/internal/infra"
	"studio/internal/infra/geoip"
	"studio/internal/ledger"
	"studio/internal/orchestrator"
	"studio/internal/pricing"
	"studio/internal/registry"
	"studio/internal/transport/kie"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// History is optional: without DATABASE_URL the service runs purely
	// in-memory and /v1/history answers empty.
	var historyStore handlers.HistoryStore
	var historySink orchestrator.HistorySink
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		repo := history.NewRepository(dbpool, logger)
		historyStore = repo
		historySink = repo
	}

	countryResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip unavailable, price display falls back to USD")
	}

	client, err := kie.NewClient(kie.Options{
		APIKey:  cfg.KieAPIKey,
		BaseURL: cfg.KieBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build generation client")
	}

	engine := pricing.NewDefaultEngine(logger)
	reg := registry.New(logger)
	orch := orchestrator.New(reg, engine, client, historySink, logger, orchestrator.Options{
		PollInterval:    time.Duration(cfg.PollIntervalSec) * time.Second,
		MaxPollAttempts: cfg.MaxPollAttempts,
	})

	app := &handlers.App{
		Logger:       logger,
		Engine:       engine,
		Orchestrator: orch,
		Registry:     reg,
		Ledger:       ledger.NewMemory(cfg.CreditGrant, logger),
		History:      historyStore,
	}

	var lookup func(ip string) (string, error)
	if countryResolver != nil {
		lookup = countryResolver.CountryCode
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		CountryLookup:   lookup,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
