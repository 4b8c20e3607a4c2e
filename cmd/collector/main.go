// Command collector runs one nightly sweep: it aggregates rates for the
// next COLLECT_LEAD_DAYS check-in dates and leaves the reports in the
// redis cache so morning dashboard queries start warm. Meant to be run
// from cron.
package main

import (
	"context"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/observability"
	redisad "github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/redis"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/scrape"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/app"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/shared"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	sources, err := shared.Sources(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading sources failed")
	}

	log.Info().
		Int("sources", len(sources)).
		Int("lead_days", cfg.CollectLeadDays).
		Int("stay_nights", cfg.CollectStayNights).
		Msg("collector starting")

	fetcher := scrape.NewFetcher(scrape.NewClient(cfg.FetchTimeout, cfg.ScrapeRPS))
	agg := app.NewAggregator(sources, fetcher, cfg.Workers)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	quotes := app.NewQuoteService(agg, cache, cfg.CacheTTL)

	// one aggregation already fans out over all sources, so sweep only a
	// couple of stay windows at a time
	sem := semaphore.NewWeighted(2)
	var wg sync.WaitGroup

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for d := 1; d <= cfg.CollectLeadDays; d++ {
		checkIn := today.AddDate(0, 0, d)
		stay := domain.StayQuery{
			CheckIn:  checkIn,
			CheckOut: checkIn.AddDate(0, 0, cfg.CollectStayNights),
			Guests:   cfg.CollectGuests,
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(stay domain.StayQuery) {
			defer wg.Done()
			defer sem.Release(1)

			report, err := quotes.FetchPrices(ctx, stay)
			if err != nil {
				log.Warn().Str("check_in", stay.CheckIn.Format(domain.DateLayout)).Err(err).Msg("sweep window failed")
				return
			}
			ok := 0
			for _, out := range report.Outcomes {
				if out.Status == domain.StatusSuccess {
					ok++
				}
			}
			log.Info().
				Str("check_in", stay.CheckIn.Format(domain.DateLayout)).
				Int("nights", report.Nights).
				Int("success", ok).
				Int("error", len(report.Outcomes)-ok).
				Msg("sweep window done")
		}(stay)
	}

	wg.Wait()
	log.Info().Msg("collection completed")
}
