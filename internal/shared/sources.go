package shared

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

// DefaultSources is the built-in Vienna competitor set: the operator's own
// property fetched through its Seekda booking engine, competitors through
// Google Hotels search.
func DefaultSources() []domain.SourceConfig {
	return []domain.SourceConfig{
		{
			Name:        "Pension Neuer Markt",
			IsMine:      true,
			Strategy:    domain.StrategySeekdaDirect,
			URLTemplate: "https://hotels.seekda.com/pension-neuermarkt/rooms?arrival={checkin}&departure={checkout}&adults={guests}",
		},
		{
			Name:        "Hotel am Schubertring",
			Strategy:    domain.StrategyGenericSearch,
			SearchQuery: "Hotel am Schubertring Vienna",
		},
		{
			Name:        "Pension Opera Suites",
			Strategy:    domain.StrategyGenericSearch,
			SearchQuery: "Pension Opera Suites Vienna",
		},
		{
			Name:        "Motel One Wien-Staatsoper",
			Strategy:    domain.StrategyGenericSearch,
			SearchQuery: "Motel One Wien-Staatsoper",
		},
		{
			Name:        "Hotel Post Wien",
			Strategy:    domain.StrategyGenericSearch,
			SearchQuery: "Hotel Post Wien Vienna",
		},
		{
			Name:        "Hotel Secession an der Oper",
			Strategy:    domain.StrategyGenericSearch,
			SearchQuery: "Hotel Secession an der Oper Vienna",
		},
	}
}

// Sources returns the configured source set: the JSON file named by
// SOURCES_FILE when present, the built-in set otherwise. The set is loaded
// once at startup and treated as immutable afterwards.
func Sources(cfg Config) ([]domain.SourceConfig, error) {
	if cfg.SourcesFile == "" {
		return DefaultSources(), nil
	}
	return LoadSources(cfg.SourcesFile)
}

func LoadSources(path string) ([]domain.SourceConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var sources []domain.SourceConfig
	if err := json.Unmarshal(b, &sources); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("sources file %s is empty", path)
	}
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sources file %s: %w", path, err)
		}
	}
	return sources, nil
}
