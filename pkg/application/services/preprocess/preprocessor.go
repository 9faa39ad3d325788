package preprocess

import (
	"fmt"
	"sort"
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Options holds configuration for sales history preprocessing
type Options struct {
	// Frequency is the target bucketing interval for demand series
	Frequency entities.Frequency
	// OutlierFence is the IQR multiplier above Q3 beyond which points are
	// winsorized (0 disables damping)
	OutlierFence float64
}

// DefaultOptions returns preprocessing options with weekly bucketing and a
// conservative outlier fence
func DefaultOptions() Options {
	return Options{
		Frequency:    entities.Weekly,
		OutlierFence: 3.0,
	}
}

// CleaningReport summarizes what preprocessing did to one series
type CleaningReport struct {
	SKU               entities.SKU `json:"sku"`
	Location          string       `json:"location"`
	RawRecords        int          `json:"raw_records"`
	DuplicatesDropped int          `json:"duplicates_dropped"`
	ReturnsNetted     int          `json:"returns_netted"`
	NegativesClamped  int          `json:"negatives_clamped"`
	GapsFilled        int          `json:"gaps_filled"`
	OutliersDamped    int          `json:"outliers_damped"`
}

// Preprocessor turns raw sales records into clean, gap-free demand series
type Preprocessor struct {
	options Options
}

// NewPreprocessor creates a preprocessor with the given options
func NewPreprocessor(options Options) *Preprocessor {
	return &Preprocessor{options: options}
}

// recordKey identifies an exact duplicate sales record
type recordKey struct {
	sku      entities.SKU
	date     time.Time
	location string
	channel  string
	quantity entities.Quantity
}

// seriesKey identifies one demand series
type seriesKey struct {
	sku      entities.SKU
	location string
}

// BuildSeries groups sales records by SKU and location, cleans each group,
// and returns one demand series per group together with its cleaning report.
// Series are returned sorted by SKU then location for deterministic output.
func (p *Preprocessor) BuildSeries(
	records []*entities.SalesRecord,
) ([]*entities.DemandSeries, []*CleaningReport, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no sales records to preprocess")
	}

	groups := make(map[seriesKey][]*entities.SalesRecord)
	for _, record := range records {
		key := seriesKey{sku: record.SKU, location: record.Location}
		groups[key] = append(groups[key], record)
	}

	keys := make([]seriesKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sku != keys[j].sku {
			return keys[i].sku < keys[j].sku
		}
		return keys[i].location < keys[j].location
	})

	var allSeries []*entities.DemandSeries
	var allReports []*CleaningReport

	for _, key := range keys {
		series, report, err := p.buildOne(key, groups[key])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build series for %s at %s: %w", key.sku, key.location, err)
		}
		allSeries = append(allSeries, series)
		allReports = append(allReports, report)
	}

	return allSeries, allReports, nil
}

// buildOne cleans and aggregates the records of a single SKU and location
func (p *Preprocessor) buildOne(
	key seriesKey,
	records []*entities.SalesRecord,
) (*entities.DemandSeries, *CleaningReport, error) {
	report := &CleaningReport{
		SKU:        key.sku,
		Location:   key.location,
		RawRecords: len(records),
	}

	// Pass 1: drop exact duplicates
	seen := make(map[recordKey]bool, len(records))
	deduped := make([]*entities.SalesRecord, 0, len(records))
	for _, record := range records {
		rk := recordKey{
			sku:      record.SKU,
			date:     record.Date,
			location: record.Location,
			channel:  record.Channel,
			quantity: record.Quantity,
		}
		if seen[rk] {
			report.DuplicatesDropped++
			continue
		}
		seen[rk] = true
		deduped = append(deduped, record)
	}

	// Pass 2: bucket by period, netting returns against the period total
	buckets := make(map[time.Time]float64)
	for _, record := range deduped {
		period := PeriodStart(p.options.Frequency, record.Date)
		buckets[period] += float64(record.Quantity)
		if record.IsReturn() {
			report.ReturnsNetted++
		}
	}

	periods := make([]time.Time, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	// Pass 3: walk the calendar from first to last period, filling gaps
	// with zero demand and clamping periods that netted negative
	var points []entities.DemandPoint
	cursor := periods[0]
	last := periods[len(periods)-1]
	for !cursor.After(last) {
		quantity, exists := buckets[cursor]
		if !exists {
			report.GapsFilled++
			quantity = 0
		}
		if quantity < 0 {
			report.NegativesClamped++
			quantity = 0
		}
		points = append(points, entities.DemandPoint{Period: cursor, Quantity: quantity})
		cursor = p.options.Frequency.Next(cursor)
	}

	// Pass 4: winsorize high outliers against the IQR fence
	if p.options.OutlierFence > 0 {
		report.OutliersDamped = winsorize(points, p.options.OutlierFence)
	}

	series, err := entities.NewDemandSeries(key.sku, key.location, p.options.Frequency, points)
	if err != nil {
		return nil, nil, err
	}

	return series, report, nil
}

// PeriodStart truncates a date to the start of its period: the day itself,
// the ISO week's Monday, or the first of the month
func PeriodStart(frequency entities.Frequency, date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	switch frequency {
	case entities.Daily:
		return day
	case entities.Weekly:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case entities.Monthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// winsorize caps points above the Q3 + fence*IQR bound and returns the
// number of points capped. Series shorter than four points are left alone.
func winsorize(points []entities.DemandPoint, fence float64) int {
	if len(points) < 4 {
		return 0
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Quantity
	}
	sort.Float64s(values)

	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	if iqr <= 0 {
		return 0
	}

	upper := q3 + fence*iqr
	damped := 0
	for i := range points {
		if points[i].Quantity > upper {
			points[i].Quantity = upper
			damped++
		}
	}
	return damped
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[lower+1]*frac
}
