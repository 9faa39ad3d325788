package forecast

import (
	"fmt"
	"sync"
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// SelectorConfig holds configuration for model selection
type SelectorConfig struct {
	// SeasonLength is the number of periods per season for seasonal models
	SeasonLength int
	// MinTrainWindow is the backtest minimum training window
	MinTrainWindow int
	// Metric picks the winner: "mape" or "rmse". Ties break on RMSE.
	Metric string
	// SmoothingGrid lists the candidate smoothing constants tried for
	// alpha, beta and gamma
	SmoothingGrid []float64
	// MaxCacheEntries limits the selection cache size (0 = unlimited)
	MaxCacheEntries int
}

// DefaultSelectorConfig returns a selector configuration with a coarse
// smoothing grid and a weekly season
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		SeasonLength:    52,
		MinTrainWindow:  8,
		Metric:          "mape",
		SmoothingGrid:   []float64{0.1, 0.3, 0.5, 0.7, 0.9},
		MaxCacheEntries: 10000,
	}
}

// Selection holds the winning model choice for one series
type Selection struct {
	ModelName  string
	Factory    func() Model
	Accuracy   entities.ForecastAccuracy
	Pattern    entities.DemandPattern
	Candidates int
	ComputedAt time.Time
}

// selectionCacheKey identifies a cached selection. Observations is part of
// the key so a series that grows re-selects.
type selectionCacheKey struct {
	sku          entities.SKU
	location     string
	frequency    entities.Frequency
	observations int
}

// Selector picks the best forecasting model for a series by backtesting a
// pattern-filtered candidate set. Selections are memoized.
type Selector struct {
	config     SelectorConfig
	backtester *Backtester

	cache      map[selectionCacheKey]*Selection
	cacheMutex sync.RWMutex
}

// NewSelector creates a model selector
func NewSelector(config SelectorConfig) *Selector {
	return &Selector{
		config:     config,
		backtester: NewBacktester(config.MinTrainWindow),
		cache:      make(map[selectionCacheKey]*Selection),
	}
}

// candidate pairs a model factory with its minimum history requirement
type candidate struct {
	name       string
	minHistory int
	factory    func() Model
}

// Select backtests every eligible candidate and returns the winner by the
// configured metric
func (s *Selector) Select(
	series *entities.DemandSeries,
	pattern entities.DemandPattern,
) (*Selection, error) {
	key := selectionCacheKey{
		sku:          series.SKU,
		location:     series.Location,
		frequency:    series.Frequency,
		observations: series.Len(),
	}

	s.cacheMutex.RLock()
	cached, exists := s.cache[key]
	s.cacheMutex.RUnlock()
	if exists {
		return cached, nil
	}

	candidates := s.candidates(series, pattern)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate models for %d observations", series.Len())
	}

	var best *Selection
	for _, c := range candidates {
		accuracy, err := s.backtester.Evaluate(series, c.factory)
		if err != nil {
			continue
		}
		if best == nil || s.better(accuracy, best.Accuracy) {
			best = &Selection{
				ModelName: c.name,
				Factory:   c.factory,
				Accuracy:  accuracy,
				Pattern:   pattern,
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no candidate model produced a usable backtest")
	}
	best.Candidates = len(candidates)
	best.ComputedAt = time.Now()

	s.cacheMutex.Lock()
	s.cache[key] = best
	s.cacheMutex.Unlock()
	s.cleanCacheIfNeeded()

	return best, nil
}

// candidates builds the model set for a series, filtered by demand pattern
// and history length
func (s *Selector) candidates(
	series *entities.DemandSeries,
	pattern entities.DemandPattern,
) []candidate {
	n := series.Len()
	seasonLength := s.config.SeasonLength

	var out []candidate

	add := func(c candidate) {
		// Backtesting needs one fold beyond the model's own minimum
		need := c.minHistory
		if need < s.config.MinTrainWindow {
			need = s.config.MinTrainWindow
		}
		if n > need {
			out = append(out, c)
		}
	}

	intermittent := pattern == entities.Intermittent || pattern == entities.Lumpy

	if intermittent {
		// Croston is the purpose-built model for sparse demand
		for _, alpha := range s.config.SmoothingGrid {
			a := alpha
			add(candidate{
				name:       NewCroston(a).Name(),
				minHistory: 3,
				factory:    func() Model { return NewCroston(a) },
			})
		}
	}

	for _, window := range []int{3, 6, 12} {
		w := window
		add(candidate{
			name:       NewMovingAverage(w).Name(),
			minHistory: w,
			factory:    func() Model { return NewMovingAverage(w) },
		})
	}

	for _, alpha := range s.config.SmoothingGrid {
		a := alpha
		add(candidate{
			name:       NewSES(a).Name(),
			minHistory: 2,
			factory:    func() Model { return NewSES(a) },
		})
	}

	// Trend and seasonal models chase noise on intermittent series
	if !intermittent {
		for _, alpha := range s.config.SmoothingGrid {
			for _, beta := range s.config.SmoothingGrid {
				a, b := alpha, beta
				add(candidate{
					name:       NewHolt(a, b).Name(),
					minHistory: 3,
					factory:    func() Model { return NewHolt(a, b) },
				})
			}
		}

		if seasonLength >= 2 && n >= 2*seasonLength {
			add(candidate{
				name:       NewSeasonalNaive(seasonLength).Name(),
				minHistory: seasonLength + 1,
				factory:    func() Model { return NewSeasonalNaive(seasonLength) },
			})
			// Coarse two-value grids keep the trend and seasonal
			// smoothing searchable without exploding the backtest cost
			for _, alpha := range s.config.SmoothingGrid {
				for _, beta := range []float64{0.05, 0.2} {
					for _, gamma := range []float64{0.05, 0.2} {
						a, b, g := alpha, beta, gamma
						add(candidate{
							name:       NewHoltWinters(a, b, g, seasonLength).Name(),
							minHistory: 2 * seasonLength,
							factory:    func() Model { return NewHoltWinters(a, b, g, seasonLength) },
						})
					}
				}
			}
		}
	}

	return out
}

// better reports whether a beats b on the configured metric, breaking
// ties on RMSE
func (s *Selector) better(a, b entities.ForecastAccuracy) bool {
	switch s.config.Metric {
	case "rmse":
		if a.RMSE != b.RMSE {
			return a.RMSE < b.RMSE
		}
		return a.MAPE < b.MAPE
	default:
		if a.MAPE != b.MAPE {
			return a.MAPE < b.MAPE
		}
		return a.RMSE < b.RMSE
	}
}

// cleanCacheIfNeeded removes the oldest cache entry when the cache size
// exceeds the limit
func (s *Selector) cleanCacheIfNeeded() {
	if s.config.MaxCacheEntries <= 0 {
		return
	}

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if len(s.cache) > s.config.MaxCacheEntries {
		var oldestTime time.Time
		var oldestKey selectionCacheKey

		for key, value := range s.cache {
			if oldestTime.IsZero() || value.ComputedAt.Before(oldestTime) {
				oldestTime = value.ComputedAt
				oldestKey = key
			}
		}

		delete(s.cache, oldestKey)
	}
}
