package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpserver "github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/http_server"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/observability"
	redisad "github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/redis"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/scrape"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/app"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	sources, err := shared.Sources(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading sources failed")
	}
	for _, src := range sources {
		log.Info().Str("source", src.Name).Str("strategy", string(src.Strategy)).Bool("mine", src.IsMine).Msg("source configured")
	}

	// deps
	fetcher := scrape.NewFetcher(scrape.NewClient(cfg.FetchTimeout, cfg.ScrapeRPS))
	agg := app.NewAggregator(sources, fetcher, cfg.Workers)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQuoteService(agg, cache, cfg.CacheTTL)

	// http
	srv := httpserver.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(httpserver.NewHandlers(q, sources))

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
