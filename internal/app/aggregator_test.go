package app_test

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/app"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

// ---- fakes ----

type fakeFetcher struct {
	calls int32
	// sources named here resolve to errors, everything else succeeds at 100/night
	failing map[string]bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, src domain.SourceConfig, stay domain.StayQuery) domain.PriceOutcome {
	atomic.AddInt32(&f.calls, 1)
	if f.failing[src.Name] {
		return domain.ErrorOutcome(src, "boom")
	}
	per := 100.0
	return domain.SuccessOutcome(src, domain.LabelGoogleHotels, per, per*float64(stay.Nights()))
}

func genericSources(names ...string) []domain.SourceConfig {
	out := make([]domain.SourceConfig, 0, len(names))
	for _, n := range names {
		out = append(out, domain.SourceConfig{Name: n, Strategy: domain.StrategyGenericSearch, SearchQuery: n + " Vienna"})
	}
	return out
}

func mustStay(t *testing.T) domain.StayQuery {
	t.Helper()
	q, err := domain.NewStayQuery("2024-03-15", "2024-03-17", 2)
	if err != nil {
		t.Fatalf("stay: %v", err)
	}
	return q
}

// ---- tests ----

func TestAggregator_OneOutcomePerSource(t *testing.T) {
	sources := genericSources("A", "B", "C", "D", "E", "F")
	f := &fakeFetcher{failing: map[string]bool{"B": true, "E": true}}
	agg := app.NewAggregator(sources, f, 4)

	report, err := agg.FetchPrices(context.Background(), mustStay(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(report.Outcomes) != len(sources) {
		t.Fatalf("outcomes = %d, want %d", len(report.Outcomes), len(sources))
	}
	if report.Nights != 2 {
		t.Fatalf("nights = %d, want 2", report.Nights)
	}

	byName := map[string]domain.PriceOutcome{}
	for _, o := range report.Outcomes {
		byName[o.Name] = o
	}
	for _, n := range []string{"B", "E"} {
		o := byName[n]
		if o.Status != domain.StatusError || o.PricePerNight != nil || o.SourceLabel != domain.LabelUnavailable {
			t.Fatalf("%s: %+v", n, o)
		}
	}
	for _, n := range []string{"A", "C", "D", "F"} {
		o := byName[n]
		if o.Status != domain.StatusSuccess || o.PricePerNight == nil {
			t.Fatalf("%s: %+v", n, o)
		}
		if *o.TotalPrice != *o.PricePerNight*2 {
			t.Fatalf("%s: total %v != per-night %v x nights", n, *o.TotalPrice, *o.PricePerNight)
		}
	}
}

func TestAggregator_InvalidStay_NoFetches(t *testing.T) {
	f := &fakeFetcher{}
	agg := app.NewAggregator(genericSources("A", "B"), f, 4)

	stay := domain.StayQuery{Guests: 2}
	stay.CheckIn = stay.CheckOut // zero nights
	_, err := agg.FetchPrices(context.Background(), stay)
	if !errors.Is(err, domain.ErrInvalidStay) {
		t.Fatalf("err = %v, want ErrInvalidStay", err)
	}
	if atomic.LoadInt32(&f.calls) != 0 {
		t.Fatalf("expected zero fetch calls, got %d", f.calls)
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	sources := genericSources("A", "B", "C")
	f := &fakeFetcher{failing: map[string]bool{"C": true}}
	agg := app.NewAggregator(sources, f, 2)

	r1, err := agg.FetchPrices(context.Background(), mustStay(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	r2, err := agg.FetchPrices(context.Background(), mustStay(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	norm := func(r domain.RateReport) []domain.PriceOutcome {
		out := append([]domain.PriceOutcome(nil), r.Outcomes...)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}
	a, b := norm(r1), norm(r2)
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Status != b[i].Status {
			t.Fatalf("reports differ at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAggregator_SingleWorkerStillCompletes(t *testing.T) {
	sources := genericSources("A", "B", "C", "D")
	f := &fakeFetcher{}
	agg := app.NewAggregator(sources, f, 1)

	report, err := agg.FetchPrices(context.Background(), mustStay(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(report.Outcomes) != 4 {
		t.Fatalf("outcomes = %d, want 4", len(report.Outcomes))
	}
}
