package scrape

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoPrice means the page was fetched but no plausible price was found.
var ErrNoPrice = errors.New("no price found")

// Extractor recovers a nightly price from raw page bytes. Implementations
// are regex scans over the full document on purpose: the third-party markup
// is unstable, so nothing here depends on element structure.
type Extractor interface {
	Extract(body []byte, nights int) (decimal.Decimal, error)
}

// numPat accepts grouped thousands in both 1,193.00 and 1.193,00 form,
// or a plain integer/decimal.
const numPat = `\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\d{1,3}(?:\.\d{3})+(?:,\d{2})?|\d+(?:[.,]\d{2})?`

var (
	priceToken     = regexp.MustCompile(`(?:€|EUR|\$)\s*(` + numPat + `)|(` + numPat + `)\s*(?:€|EUR|\$)`)
	discountMarker = regexp.MustCompile(`-\s?\d{1,3}\s?%`)
)

// Plausibility bands. Matches outside the band are extraction noise
// (tax ids, review counts, unrelated amounts), never an error.
var (
	nightlyBandLo = decimal.NewFromInt(20)
	nightlyBandHi = decimal.NewFromInt(2000)
	totalBandLo   = decimal.NewFromInt(30)
	totalBandHi   = decimal.NewFromInt(50000)
)

type pricePos struct {
	off int
	amt decimal.Decimal
}

func scanPrices(text []byte, lo, hi decimal.Decimal) []pricePos {
	var out []pricePos
	for _, m := range priceToken.FindAllSubmatchIndex(text, -1) {
		gs, ge := m[2], m[3] // currency-prefixed form
		if gs < 0 {
			gs, ge = m[4], m[5] // currency-suffixed form
		}
		amt, ok := parseAmount(string(text[gs:ge]))
		if !ok || amt.LessThan(lo) || amt.GreaterThan(hi) {
			continue
		}
		out = append(out, pricePos{off: m[0], amt: amt})
	}
	return out
}

// parseAmount normalizes separators and parses exactly. A trailing
// two-digit group is a decimal fraction; everything else is thousands.
func parseAmount(s string) (decimal.Decimal, bool) {
	if i := strings.LastIndexAny(s, ".,"); i >= 0 {
		if len(s)-i-1 == 2 {
			s = strings.Map(dropSeparators, s[:i]) + "." + s[i+1:]
		} else {
			s = strings.Map(dropSeparators, s)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func dropSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}

// GenericExtractor handles search-result pages: many room types and rates
// are listed, and the cheapest in-band nightly rate is the one of
// competitive interest.
type GenericExtractor struct{}

func (GenericExtractor) Extract(body []byte, _ int) (decimal.Decimal, error) {
	prices := scanPrices(body, nightlyBandLo, nightlyBandHi)
	if len(prices) == 0 {
		return decimal.Zero, ErrNoPrice
	}
	return minAmount(prices).Round(2), nil
}

// DiscountExtractor handles Seekda booking-engine pages, which show stay
// totals laid out as (original price, -NN%, discounted price) triples in
// reading order. The first in-band total after a discount marker is that
// marker's discounted total; with no markers on the page the cheapest total
// wins. The chosen total is divided by the night count.
type DiscountExtractor struct{}

func (DiscountExtractor) Extract(body []byte, nights int) (decimal.Decimal, error) {
	if nights < 1 {
		return decimal.Zero, fmt.Errorf("non-positive night count %d", nights)
	}

	totals := scanPrices(body, totalBandLo, totalBandHi)
	if len(totals) == 0 {
		return decimal.Zero, ErrNoPrice
	}

	var discounted []pricePos
	for _, mk := range discountMarker.FindAllIndex(body, -1) {
		for _, p := range totals {
			if p.off >= mk[1] {
				discounted = append(discounted, p)
				break
			}
		}
	}

	pool := discounted
	if len(pool) == 0 {
		pool = totals // no active discount on the page
	}
	return minAmount(pool).DivRound(decimal.NewFromInt(int64(nights)), 2), nil
}

func minAmount(ps []pricePos) decimal.Decimal {
	min := ps[0].amt
	for _, p := range ps[1:] {
		if p.amt.LessThan(min) {
			min = p.amt
		}
	}
	return min
}
