package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

// PriceService is what the route layer consumes.
type PriceService interface {
	FetchPrices(ctx context.Context, stay domain.StayQuery) (domain.RateReport, error)
}

// QuoteService serves rate reports through a short-TTL cache. Competitor
// rates move on the scale of hours, so repeated identical queries within
// the TTL skip the scrape fan-out entirely.
type QuoteService struct {
	agg      *Aggregator
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQuoteService(agg *Aggregator, cache domain.Cache, ttl time.Duration) *QuoteService {
	return &QuoteService{agg: agg, cache: cache, cacheTTL: ttl}
}

func (s *QuoteService) FetchPrices(ctx context.Context, stay domain.StayQuery) (domain.RateReport, error) {
	if err := stay.Validate(); err != nil {
		return domain.RateReport{}, err
	}

	key := reportKey(stay)
	var cached domain.RateReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	report, err := s.agg.FetchPrices(ctx, stay)
	if err != nil {
		return domain.RateReport{}, err
	}
	_ = s.cache.Set(ctx, key, report, int(s.cacheTTL.Seconds()))
	return report, nil
}

func reportKey(stay domain.StayQuery) string {
	return fmt.Sprintf("rates:%s:%s:%d",
		stay.CheckIn.Format(domain.DateLayout),
		stay.CheckOut.Format(domain.DateLayout),
		stay.Guests)
}
