package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/avelkar/supplysight/pkg/application/dto"
	"github.com/avelkar/supplysight/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// ForecastCard is one forecast panel on the dashboard
type ForecastCard struct {
	SKU       entities.SKU
	Location  string
	Method    string
	Pattern   string
	MAPE      float64
	NextValue float64
	Sparkline template.HTML
}

// DashboardData contains everything the dashboard template renders
type DashboardData struct {
	RunID       string
	GeneratedAt string
	Frequency   string
	Horizon     int
	Counts      dto.DatasetCounts

	Forecasts     []ForecastCard
	Policies      []*entities.InventoryPolicy
	ABC           []entities.ABCEntry
	ClassCounts   map[string]int
	SupplierRisks []*entities.SupplierRisk
	StockoutRisks []*entities.StockoutRisk
	Skipped       []dto.SkippedSeries
}

// RenderDashboard renders the analysis result into a standalone HTML page
func RenderDashboard(result *dto.AnalysisResult) (string, error) {
	data := buildDashboardData(result)

	tmpl, err := template.New("dashboard.html").
		Funcs(template.FuncMap{
			"mulpct": func(v float64) float64 { return v * 100 },
		}).
		ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard template: %w", err)
	}
	return buf.String(), nil
}

func buildDashboardData(result *dto.AnalysisResult) *DashboardData {
	data := &DashboardData{
		RunID:         result.RunID,
		GeneratedAt:   result.GeneratedAt.Format(time.RFC1123),
		Frequency:     result.Frequency,
		Horizon:       result.Horizon,
		Counts:        result.Counts,
		Policies:      result.Policies,
		SupplierRisks: result.SupplierRisks,
		StockoutRisks: result.StockoutRisks,
		Skipped:       result.Skipped,
		ClassCounts:   make(map[string]int),
	}

	sparkline := NewSparkline()
	for _, fc := range result.Forecasts {
		card := ForecastCard{
			SKU:      fc.SKU,
			Location: fc.Location,
			Method:   fc.Method,
			Pattern:  fc.Pattern.String(),
			MAPE:     fc.Accuracy.MAPE,
			// The sparkline SVG is generated here, not user input
			Sparkline: template.HTML(sparkline.GenerateSVG(fc.Points)),
		}
		if len(fc.Points) > 0 {
			card.NextValue = fc.Points[0].Value
		}
		data.Forecasts = append(data.Forecasts, card)
	}

	if result.ABC != nil {
		data.ABC = result.ABC.Entries
		for class, count := range result.ABC.CountByClass() {
			data.ClassCounts[class.String()] = count
		}
	}

	return data
}
