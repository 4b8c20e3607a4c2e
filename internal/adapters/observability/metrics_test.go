package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so counters are non-zero
	observability.ObserveHTTP("/api/fetch-prices", "POST", 200, 12*time.Millisecond)
	observability.ObserveScrape("Hotel Post Wien", observability.ScrapeOK, 300*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "hotelrates_http_requests_total") {
		t.Fatalf("expected hotelrates_http_requests_total in output")
	}
	if !strings.Contains(out, "hotelrates_scrape_requests_total") {
		t.Fatalf("expected hotelrates_scrape_requests_total in output")
	}
}
