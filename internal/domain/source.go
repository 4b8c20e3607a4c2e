package domain

import "fmt"

// Strategy selects the fetch/extraction heuristic bound to a source.
type Strategy string

const (
	// StrategyGenericSearch scrapes a hotel-search result page and takes
	// the cheapest plausible nightly rate.
	StrategyGenericSearch Strategy = "generic-search"
	// StrategySeekdaDirect scrapes a hotel's own Seekda booking-engine
	// page, which lists discounted stay totals rather than nightly rates.
	StrategySeekdaDirect Strategy = "seekda-direct"
)

// SourceConfig describes one competitor listing. The set of sources is
// loaded once at startup and never mutated.
type SourceConfig struct {
	Name        string   `json:"name"`
	IsMine      bool     `json:"isMine"`
	Strategy    Strategy `json:"strategy"`
	SearchQuery string   `json:"searchQuery,omitempty"` // generic-search
	URLTemplate string   `json:"urlTemplate,omitempty"` // seekda-direct, {checkin}/{checkout}/{guests}
}

func (s SourceConfig) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("source without name")
	}
	switch s.Strategy {
	case StrategyGenericSearch:
		if s.SearchQuery == "" {
			return fmt.Errorf("source %q: generic-search needs searchQuery", s.Name)
		}
	case StrategySeekdaDirect:
		if s.URLTemplate == "" {
			return fmt.Errorf("source %q: seekda-direct needs urlTemplate", s.Name)
		}
	default:
		return fmt.Errorf("source %q: unknown strategy %q", s.Name, s.Strategy)
	}
	return nil
}
