package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

// Aggregator fans one fetch per configured source out over a bounded worker
// pool and joins before returning. Per-source failures never abort the
// batch; only query validation short-circuits, before any network work.
type Aggregator struct {
	sources []domain.SourceConfig
	fetcher domain.SourceFetcher
	workers int
}

func NewAggregator(sources []domain.SourceConfig, fetcher domain.SourceFetcher, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{sources: sources, fetcher: fetcher, workers: workers}
}

// FetchPrices returns one outcome per configured source. Outcome order is
// completion order, not source order.
func (a *Aggregator) FetchPrices(ctx context.Context, stay domain.StayQuery) (domain.RateReport, error) {
	if err := stay.Validate(); err != nil {
		return domain.RateReport{}, err
	}

	outcomes := make(chan domain.PriceOutcome, len(a.sources))
	sem := semaphore.NewWeighted(int64(a.workers))
	var wg sync.WaitGroup

	for _, src := range a.sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			// caller gave up; keep the report complete anyway
			outcomes <- domain.ErrorOutcome(src, fmt.Sprintf("not attempted: %v", err))
			continue
		}
		wg.Add(1)
		go func(src domain.SourceConfig) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes <- a.fetcher.Fetch(ctx, src, stay)
		}(src)
	}

	wg.Wait()
	close(outcomes)

	report := domain.RateReport{
		Outcomes: make([]domain.PriceOutcome, 0, len(a.sources)),
		Nights:   stay.Nights(),
	}
	for out := range outcomes {
		report.Outcomes = append(report.Outcomes, out)
	}

	log.Debug().
		Int("sources", len(a.sources)).
		Int("nights", report.Nights).
		Msg("aggregation complete")
	return report, nil
}
