package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

const googleHotelsBase = "https://www.google.com/travel/hotels"

// Google varies or blocks responses for non-browser-like clients, so search
// requests carry a realistic desktop profile.
const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	browserAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	browserLanguage  = "en-US,en;q=0.5"
)

// BuildRequest is a pure function of (source, stay): it produces the fully
// formed GET for the source's strategy. A failure here is a config defect,
// not a runtime condition.
func BuildRequest(ctx context.Context, src domain.SourceConfig, stay domain.StayQuery) (*http.Request, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var target string
	switch src.Strategy {
	case domain.StrategyGenericSearch:
		target = searchURL(src.SearchQuery, stay)
	case domain.StrategySeekdaDirect:
		target = expandTemplate(src.URLTemplate, stay)
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("build request for %q: malformed url %q", src.Name, target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", src.Name, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", browserAccept)
	req.Header.Set("Accept-Language", browserLanguage)
	return req, nil
}

func searchURL(query string, stay domain.StayQuery) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", "en-US")
	v.Set("gl", "us")
	v.Set("cs", "1")
	v.Set("ssta", "1")
	v.Set("checkin", stay.CheckIn.Format(domain.DateLayout))
	v.Set("checkout", stay.CheckOut.Format(domain.DateLayout))
	v.Set("adults", strconv.Itoa(stay.Guests))
	return googleHotelsBase + "?" + v.Encode()
}

func expandTemplate(tmpl string, stay domain.StayQuery) string {
	r := strings.NewReplacer(
		"{checkin}", stay.CheckIn.Format(domain.DateLayout),
		"{checkout}", stay.CheckOut.Format(domain.DateLayout),
		"{guests}", strconv.Itoa(stay.Guests),
	)
	return r.Replace(tmpl)
}
