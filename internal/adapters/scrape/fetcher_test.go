package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/scrape"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

func directSource(url string) domain.SourceConfig {
	return domain.SourceConfig{
		Name:        "Pension Neuer Markt",
		IsMine:      true,
		Strategy:    domain.StrategySeekdaDirect,
		URLTemplate: url + "?arrival={checkin}&departure={checkout}&adults={guests}",
	}
}

func TestFetcher_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("arrival") != "2024-03-15" {
			t.Errorf("arrival = %q", r.URL.Query().Get("arrival"))
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`<s>€ 1,193.00</s> -17% € 990.19`))
	}))
	defer ts.Close()

	f := scrape.NewFetcher(scrape.NewClient(2*time.Second, 100))
	out := f.Fetch(context.Background(), directSource(ts.URL), stay(t))

	if out.Status != domain.StatusSuccess {
		t.Fatalf("status = %s, detail = %s", out.Status, out.ErrorDetail)
	}
	if out.PricePerNight == nil || *out.PricePerNight != 495.10 {
		t.Fatalf("pricePerNight = %v, want 495.10", out.PricePerNight)
	}
	if out.TotalPrice == nil || *out.TotalPrice != 990.20 {
		t.Fatalf("totalPrice = %v, want 990.20", out.TotalPrice)
	}
	if out.SourceLabel != domain.LabelDirect {
		t.Fatalf("source = %q", out.SourceLabel)
	}
	if !out.IsMine {
		t.Fatal("expected isMine to carry over")
	}
}

func TestFetcher_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	f := scrape.NewFetcher(scrape.NewClient(2*time.Second, 100))
	out := f.Fetch(context.Background(), directSource(ts.URL), stay(t))

	if out.Status != domain.StatusError {
		t.Fatalf("status = %s", out.Status)
	}
	if out.PricePerNight != nil || out.TotalPrice != nil {
		t.Fatal("error outcome must carry no prices")
	}
	if out.SourceLabel != domain.LabelUnavailable {
		t.Fatalf("source = %q", out.SourceLabel)
	}
	if out.ErrorDetail == "" {
		t.Fatal("expected internal error detail")
	}
}

func TestFetcher_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	f := scrape.NewFetcher(scrape.NewClient(50*time.Millisecond, 100))
	out := f.Fetch(context.Background(), directSource(ts.URL), stay(t))

	if out.Status != domain.StatusError || out.SourceLabel != domain.LabelUnavailable {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestFetcher_ExtractionMiss(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`<html>keine Zimmer verfügbar</html>`))
	}))
	defer ts.Close()

	f := scrape.NewFetcher(scrape.NewClient(2*time.Second, 100))
	out := f.Fetch(context.Background(), directSource(ts.URL), stay(t))

	// renders identically to an unavailable source
	if out.Status != domain.StatusError || out.SourceLabel != domain.LabelUnavailable {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestFetcher_BuildErrorRecovered(t *testing.T) {
	src := domain.SourceConfig{Name: "broken", Strategy: domain.StrategySeekdaDirect, URLTemplate: "nope"}
	f := scrape.NewFetcher(scrape.NewClient(time.Second, 100))
	out := f.Fetch(context.Background(), src, stay(t))

	if out.Status != domain.StatusError || out.SourceLabel != domain.LabelUnavailable {
		t.Fatalf("outcome = %+v", out)
	}
}
