// Package orchestration runs the full analytics pipeline: load, clean,
// classify, forecast, optimize and score.
package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avelkar/supplysight/pkg/application/dto"
	"github.com/avelkar/supplysight/pkg/application/services/forecast"
	"github.com/avelkar/supplysight/pkg/application/services/inventory"
	"github.com/avelkar/supplysight/pkg/application/services/preprocess"
	"github.com/avelkar/supplysight/pkg/application/services/risk"
	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
	domainservices "github.com/avelkar/supplysight/pkg/domain/services"
	"github.com/avelkar/supplysight/pkg/infrastructure/events"
	"github.com/avelkar/supplysight/pkg/infrastructure/metrics"
)

// Config holds all knobs of one pipeline run
type Config struct {
	Frequency    entities.Frequency
	Horizon      int
	OutlierFence float64
	Selector     forecast.SelectorConfig
	Inventory    inventory.Config
	ABC          inventory.ABCThresholds
	RiskWeights  risk.Weights
}

// DefaultConfig returns a standard weekly pipeline configuration
func DefaultConfig() Config {
	return Config{
		Frequency:    entities.Weekly,
		Horizon:      12,
		OutlierFence: 3.0,
		Selector:     forecast.DefaultSelectorConfig(),
		Inventory:    inventory.DefaultConfig(),
		ABC:          inventory.DefaultABCThresholds(),
		RiskWeights:  risk.DefaultWeights(),
	}
}

// Repositories bundles the data access the pipeline reads from
type Repositories struct {
	Items     repositories.ItemRepository
	Sales     repositories.SalesRepository
	Inventory repositories.InventoryRepository
	Suppliers repositories.SupplierRepository
}

// AnalyticsPipeline wires the application services into one run
type AnalyticsPipeline struct {
	config     Config
	repos      Repositories
	eventStore events.EventStore
	logger     *zap.Logger

	preprocessor *preprocess.Preprocessor
	classifier   *domainservices.DemandClassifier
	forecaster   *forecast.Forecaster
	optimizer    *inventory.Optimizer
	scorer       *risk.SupplierScorer
	assessor     *risk.StockoutAssessor
}

// NewAnalyticsPipeline builds a pipeline from its configuration and
// repositories. The event store may be nil when nothing subscribes.
func NewAnalyticsPipeline(
	config Config,
	repos Repositories,
	eventStore events.EventStore,
	logger *zap.Logger,
) (*AnalyticsPipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	forecaster, err := forecast.NewForecaster(config.Selector, config.Inventory.ServiceLevel)
	if err != nil {
		return nil, fmt.Errorf("building forecaster: %w", err)
	}
	optimizer, err := inventory.NewOptimizer(config.Inventory)
	if err != nil {
		return nil, fmt.Errorf("building optimizer: %w", err)
	}
	scorer, err := risk.NewSupplierScorer(config.RiskWeights)
	if err != nil {
		return nil, fmt.Errorf("building supplier scorer: %w", err)
	}

	if eventStore != nil && logger.Core().Enabled(zap.DebugLevel) {
		if err := eventStore.Subscribe(events.AllEventTypes(), events.NewTraceHandler(logger)); err != nil {
			return nil, fmt.Errorf("subscribing event trace: %w", err)
		}
	}

	return &AnalyticsPipeline{
		config:     config,
		repos:      repos,
		eventStore: eventStore,
		logger:     logger,
		preprocessor: preprocess.NewPreprocessor(preprocess.Options{
			Frequency:    config.Frequency,
			OutlierFence: config.OutlierFence,
		}),
		classifier: domainservices.NewDemandClassifier(),
		forecaster: forecaster,
		optimizer:  optimizer,
		scorer:     scorer,
		assessor:   risk.NewStockoutAssessor(),
	}, nil
}

// Run executes every stage and returns the assembled result. Per-series
// failures are recorded as skips; only stage-level failures and context
// cancellation abort the run.
func (p *AnalyticsPipeline) Run(ctx context.Context) (*dto.AnalysisResult, error) {
	started := time.Now()
	result := &dto.AnalysisResult{
		RunID:       uuid.New().String(),
		GeneratedAt: started,
		Frequency:   p.config.Frequency.String(),
		Horizon:     p.config.Horizon,
	}
	logger := p.logger.With(zap.String("run_id", result.RunID))

	// Stage 1: load
	stageStart := time.Now()
	items, err := p.repos.Items.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	sales, err := p.repos.Sales.GetAllSales()
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}
	snapshots, err := p.repos.Inventory.GetAllSnapshots()
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	suppliers, err := p.repos.Suppliers.GetAllSuppliers()
	if err != nil {
		return nil, fmt.Errorf("loading suppliers: %w", err)
	}

	result.Counts = dto.DatasetCounts{
		Items:     len(items),
		Sales:     len(sales),
		Snapshots: len(snapshots),
		Suppliers: len(suppliers),
	}
	metrics.RecordsLoaded.WithLabelValues("items").Add(float64(len(items)))
	metrics.RecordsLoaded.WithLabelValues("sales").Add(float64(len(sales)))
	metrics.RecordsLoaded.WithLabelValues("inventory").Add(float64(len(snapshots)))
	metrics.RecordsLoaded.WithLabelValues("suppliers").Add(float64(len(suppliers)))
	p.finishStage(result, "load", stageStart)
	p.publish(events.DatasetLoadedEvent, result.RunID, events.DatasetLoaded{
		RunID:     result.RunID,
		Items:     len(items),
		Sales:     len(sales),
		Snapshots: len(snapshots),
		Suppliers: len(suppliers),
	})
	logger.Info("dataset loaded",
		zap.Int("items", len(items)),
		zap.Int("sales", len(sales)),
		zap.Int("snapshots", len(snapshots)),
		zap.Int("suppliers", len(suppliers)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: preprocess into clean demand series. An empty sales
	// history is not an error; downstream stages simply see no series.
	stageStart = time.Now()
	var series []*entities.DemandSeries
	if len(sales) > 0 {
		var reports []*preprocess.CleaningReport
		series, reports, err = p.preprocessor.BuildSeries(sales)
		if err != nil {
			return nil, fmt.Errorf("preprocessing sales: %w", err)
		}
		result.CleaningReports = reports
	}
	metrics.SeriesPrepared.Add(float64(len(series)))
	p.finishStage(result, "preprocess", stageStart)
	for _, s := range series {
		p.publish(events.SeriesPreparedEvent, result.RunID, events.SeriesPrepared{
			RunID:    result.RunID,
			SKU:      s.SKU,
			Location: s.Location,
			Periods:  s.Len(),
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: features, classification, model selection, forecast
	stageStart = time.Now()
	demandStats := make(map[entities.SKU]inventory.DemandStats)
	annualDemand := make(map[entities.SKU]float64)
	rates := make(map[seriesKey]risk.DemandRate)

	for _, s := range series {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		features := p.classifier.ComputeFeatures(s)
		pattern := p.classifier.Classify(features)

		stats := inventory.StatsFromSeries(s, features)
		demandStats[s.SKU] = stats
		annualDemand[s.SKU] += stats.AnnualDemand
		rates[seriesKey{sku: s.SKU, location: s.Location}] = risk.DemandRate{
			DailyMean:   stats.DailyMean,
			DailyStdDev: stats.DailyStdDev,
		}

		fc, err := p.forecaster.Generate(s, pattern, p.config.Horizon)
		if err != nil {
			result.Skipped = append(result.Skipped, dto.SkippedSeries{
				SKU: s.SKU, Location: s.Location, Stage: "forecast", Reason: err.Error(),
			})
			metrics.SeriesSkipped.WithLabelValues("forecast").Inc()
			logger.Warn("series skipped",
				zap.String("sku", string(s.SKU)),
				zap.String("location", s.Location),
				zap.Error(err))
			continue
		}

		result.Forecasts = append(result.Forecasts, fc)
		metrics.ForecastRuns.WithLabelValues(fc.Method).Inc()
		p.publish(events.ForecastGeneratedEvent, result.RunID, events.ForecastGenerated{
			RunID:    result.RunID,
			SKU:      fc.SKU,
			Location: fc.Location,
			Method:   fc.Method,
			MAPE:     fc.Accuracy.MAPE,
		})
	}
	p.finishStage(result, "forecast", stageStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: inventory policies per forecasted series
	stageStart = time.Now()
	for _, s := range series {
		stats := demandStats[s.SKU]
		item, err := p.repos.Items.GetItem(s.SKU)
		if err != nil {
			result.Skipped = append(result.Skipped, dto.SkippedSeries{
				SKU: s.SKU, Location: s.Location, Stage: "policy", Reason: err.Error(),
			})
			metrics.SeriesSkipped.WithLabelValues("policy").Inc()
			continue
		}

		policy, err := p.optimizer.ComputePolicy(item, s.Location, stats)
		if err != nil {
			result.Skipped = append(result.Skipped, dto.SkippedSeries{
				SKU: s.SKU, Location: s.Location, Stage: "policy", Reason: err.Error(),
			})
			metrics.SeriesSkipped.WithLabelValues("policy").Inc()
			continue
		}

		result.Policies = append(result.Policies, policy)
		p.publish(events.PolicyComputedEvent, result.RunID, events.PolicyComputed{
			RunID:        result.RunID,
			SKU:          policy.SKU,
			Location:     policy.Location,
			EOQ:          policy.EOQ,
			ReorderPoint: policy.ReorderPoint,
		})
	}
	p.finishStage(result, "policy", stageStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: ABC classification over the item master
	stageStart = time.Now()
	if len(items) > 0 {
		abc, err := inventory.ClassifyABC(items, annualDemand, p.config.ABC)
		if err != nil {
			logger.Warn("abc classification skipped", zap.Error(err))
		} else {
			result.ABC = abc
		}
	}
	p.finishStage(result, "abc", stageStart)

	// Stage 6: supplier and stockout risk
	stageStart = time.Now()
	if len(suppliers) > 0 {
		supplierRisks, err := p.scorer.Score(suppliers, items)
		if err != nil {
			return nil, fmt.Errorf("scoring suppliers: %w", err)
		}
		result.SupplierRisks = supplierRisks
		for _, sr := range supplierRisks {
			if sr.Level >= entities.RiskHigh {
				p.publish(events.RiskFlaggedEvent, result.RunID, events.RiskFlagged{
					RunID: result.RunID, Kind: "supplier",
					SupplierID: sr.SupplierID, Level: sr.Level, Score: sr.Score,
				})
			}
		}
	}

	for _, snapshot := range snapshots {
		item, err := p.repos.Items.GetItem(snapshot.SKU)
		if err != nil {
			continue
		}
		rate, exists := rates[seriesKey{sku: snapshot.SKU, location: snapshot.Location}]
		if !exists {
			// No demand history at this location: fall back to the SKU's
			// aggregate daily rate
			stats, ok := demandStats[snapshot.SKU]
			if !ok {
				continue
			}
			rate = risk.DemandRate{DailyMean: stats.DailyMean, DailyStdDev: stats.DailyStdDev}
		}

		sr, err := p.assessor.Assess(snapshot, item, rate)
		if err != nil {
			continue
		}
		result.StockoutRisks = append(result.StockoutRisks, sr)
		if sr.Level >= entities.RiskHigh {
			p.publish(events.RiskFlaggedEvent, result.RunID, events.RiskFlagged{
				RunID: result.RunID, Kind: "stockout",
				SKU: sr.SKU, Location: sr.Location, Level: sr.Level,
				Score: sr.Probability * 100,
			})
		}
	}
	risk.RankRegister(result.StockoutRisks)
	p.finishStage(result, "risk", stageStart)

	p.publish(events.PipelineCompletedEvent, result.RunID, events.PipelineCompleted{
		RunID:     result.RunID,
		Forecasts: len(result.Forecasts),
		Policies:  len(result.Policies),
		Skipped:   len(result.Skipped),
		Elapsed:   time.Since(started),
	})
	logger.Info("pipeline completed",
		zap.Int("forecasts", len(result.Forecasts)),
		zap.Int("policies", len(result.Policies)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

// seriesKey pairs a SKU with a location
type seriesKey struct {
	sku      entities.SKU
	location string
}

func (p *AnalyticsPipeline) finishStage(result *dto.AnalysisResult, stage string, started time.Time) {
	elapsed := time.Since(started)
	result.Timings = append(result.Timings, dto.StageTiming{Stage: stage, Elapsed: elapsed})
	metrics.ObserveStage(stage, elapsed)
}

func (p *AnalyticsPipeline) publish(eventType, runID string, data interface{}) {
	if p.eventStore == nil {
		return
	}
	if err := p.eventStore.AppendEvent(runID, events.NewEvent(eventType, runID, data)); err != nil {
		p.logger.Warn("event publish failed", zap.String("event_type", eventType), zap.Error(err))
	}
}
