package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/observability"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

// Fetcher resolves one source to one outcome: build request, single timed
// GET, strategy-matched extraction. It never returns an error; every
// failure path, including panics out of misconfigured sources, collapses
// into a status=error outcome so no source can sink an aggregation.
type Fetcher struct {
	client   *Client
	generic  Extractor
	discount Extractor
}

func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{
		client:   client,
		generic:  GenericExtractor{},
		discount: DiscountExtractor{},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, src domain.SourceConfig, stay domain.StayQuery) (out domain.PriceOutcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("source", src.Name).Interface("panic", r).Msg("source fetch panicked")
			observability.ObserveScrape(src.Name, observability.ScrapeUnavailable, time.Since(start))
			out = domain.ErrorOutcome(src, fmt.Sprintf("panic: %v", r))
		}
	}()

	req, err := BuildRequest(ctx, src, stay)
	if err != nil {
		// config invariant violation, not a runtime condition
		log.Error().Str("source", src.Name).Err(err).Msg("request build failed")
		observability.ObserveScrape(src.Name, observability.ScrapeUnavailable, time.Since(start))
		return domain.ErrorOutcome(src, err.Error())
	}

	body, err := f.client.Get(req)
	if err != nil {
		log.Warn().Str("source", src.Name).Err(err).Msg("source unavailable")
		observability.ObserveScrape(src.Name, observability.ScrapeUnavailable, time.Since(start))
		return domain.ErrorOutcome(src, err.Error())
	}

	perNight, err := f.extractor(src).Extract(body, stay.Nights())
	if err != nil {
		if errors.Is(err, ErrNoPrice) {
			log.Warn().Str("source", src.Name).Int("bytes", len(body)).Msg("no plausible price on page")
		} else {
			log.Error().Str("source", src.Name).Err(err).Msg("extraction failed")
		}
		observability.ObserveScrape(src.Name, observability.ScrapeNoPrice, time.Since(start))
		return domain.ErrorOutcome(src, err.Error())
	}

	total := perNight.Mul(decimal.NewFromInt(int64(stay.Nights()))).Round(2)
	observability.ObserveScrape(src.Name, observability.ScrapeOK, time.Since(start))
	return domain.SuccessOutcome(src, f.label(src), perNight.InexactFloat64(), total.InexactFloat64())
}

func (f *Fetcher) extractor(src domain.SourceConfig) Extractor {
	if src.Strategy == domain.StrategySeekdaDirect {
		return f.discount
	}
	return f.generic
}

func (f *Fetcher) label(src domain.SourceConfig) string {
	if src.Strategy == domain.StrategySeekdaDirect {
		return domain.LabelDirect
	}
	return domain.LabelGoogleHotels
}
