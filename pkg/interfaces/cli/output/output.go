package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/avelkar/supplysight/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
}

// Generate creates output in the specified format
func Generate(result *dto.AnalysisResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.AnalysisResult, config Config) error {
	p := message.NewPrinter(language.English)

	p.Printf("Supply Chain Analysis %s\n", result.RunID)
	p.Printf("======================\n\n")
	p.Printf("Frequency: %s, horizon: %d periods\n", result.Frequency, result.Horizon)
	p.Printf("Dataset: %d items, %d sales records, %d snapshots, %d suppliers\n",
		result.Counts.Items, result.Counts.Sales, result.Counts.Snapshots, result.Counts.Suppliers)
	p.Printf("Elapsed: %v\n\n", config.Elapsed)

	if len(result.Forecasts) > 0 {
		p.Printf("Forecasts:\n")
		p.Printf("%-15s %-10s %-18s %-12s %8s %10s\n",
			"SKU", "Location", "Method", "Pattern", "MAPE", "Next")
		p.Printf("%-15s %-10s %-18s %-12s %8s %10s\n",
			"---------------", "----------", "------------------", "------------", "--------", "----------")
		for _, fc := range result.Forecasts {
			next := 0.0
			if len(fc.Points) > 0 {
				next = fc.Points[0].Value
			}
			p.Printf("%-15s %-10s %-18s %-12s %7.1f%% %10.1f\n",
				fc.SKU, fc.Location, fc.Method, fc.Pattern.String(), fc.Accuracy.MAPE, next)
		}
		p.Println()
	}

	if len(result.Policies) > 0 {
		p.Printf("Inventory Policies:\n")
		p.Printf("%-15s %-10s %10s %12s %14s %14s %10s %14s\n",
			"SKU", "Location", "EOQ", "Safety Stock", "Reorder Point", "Annual Demand", "Turnover", "Days of Supply")
		p.Printf("%-15s %-10s %10s %12s %14s %14s %10s %14s\n",
			"---------------", "----------", "----------", "------------", "--------------", "--------------", "----------", "--------------")
		for _, policy := range result.Policies {
			p.Printf("%-15s %-10s %10d %12d %14d %14.0f %10.1f %14.0f\n",
				policy.SKU, policy.Location, policy.EOQ,
				policy.SafetyStock, policy.ReorderPoint, policy.AnnualDemand,
				policy.Turnover, policy.DaysOfSupply)
		}
		p.Println()
	}

	if result.ABC != nil && len(result.ABC.Entries) > 0 {
		p.Printf("ABC Classification:\n")
		p.Printf("%-15s %-6s %16s %10s %12s\n",
			"SKU", "Class", "Annual Value", "Share", "Cumulative")
		p.Printf("%-15s %-6s %16s %10s %12s\n",
			"---------------", "------", "----------------", "----------", "------------")
		for _, entry := range result.ABC.Entries {
			p.Printf("%-15s %-6s %16s %9.1f%% %11.1f%%\n",
				entry.SKU, entry.Class.String(), entry.AnnualValue.StringFixed(2),
				entry.ValueShare*100, entry.CumulativeShare*100)
		}
		p.Println()
	}

	if len(result.SupplierRisks) > 0 {
		p.Printf("Supplier Risk:\n")
		p.Printf("%-12s %-20s %8s %-10s %12s\n",
			"Supplier", "Name", "Score", "Level", "Sole Source")
		p.Printf("%-12s %-20s %8s %-10s %12s\n",
			"------------", "--------------------", "--------", "----------", "------------")
		for _, sr := range result.SupplierRisks {
			p.Printf("%-12s %-20s %8.1f %-10s %12d\n",
				sr.SupplierID, sr.Name, sr.Score, sr.Level.String(), sr.SoleSourceSKUs)
		}
		p.Println()
	}

	if len(result.StockoutRisks) > 0 {
		p.Printf("Stockout Risk (worst first):\n")
		p.Printf("%-15s %-10s %12s %14s %14s %-10s\n",
			"SKU", "Location", "Probability", "Days of Cover", "Net Position", "Level")
		p.Printf("%-15s %-10s %12s %14s %14s %-10s\n",
			"---------------", "----------", "------------", "--------------", "--------------", "----------")
		for _, sr := range result.StockoutRisks {
			p.Printf("%-15s %-10s %11.1f%% %14.1f %14d %-10s\n",
				sr.SKU, sr.Location, sr.Probability*100, sr.DaysOfCover,
				sr.NetPosition, sr.Level.String())
		}
		p.Println()
	}

	if len(result.Skipped) > 0 {
		p.Printf("Skipped series:\n")
		for _, skipped := range result.Skipped {
			p.Printf("  %s @ %s (%s): %s\n", skipped.SKU, skipped.Location, skipped.Stage, skipped.Reason)
		}
		p.Println()
	}

	if config.OutputDir != "" {
		return generateJSONOutput(result, Config{
			Format:    "json",
			OutputDir: config.OutputDir,
			Verbose:   config.Verbose,
		})
	}
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.AnalysisResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "analysis.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one CSV file per result section
func generateCSVOutput(result *dto.AnalysisResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := map[string]func(*dto.AnalysisResult, *csv.Writer) error{
		"forecasts.csv":      writeForecastsCSV,
		"policies.csv":       writePoliciesCSV,
		"abc.csv":            writeABCCSV,
		"supplier_risks.csv": writeSupplierRisksCSV,
		"stockout_risks.csv": writeStockoutRisksCSV,
	}

	for name, write := range files {
		path := filepath.Join(config.OutputDir, name)
		if err := writeCSVFile(path, result, write); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if config.Verbose {
			fmt.Printf("CSV results saved to: %s\n", path)
		}
	}
	return nil
}

// generateHTMLOutput renders the dashboard to a standalone file
func generateHTMLOutput(result *dto.AnalysisResult, config Config) error {
	html, err := RenderDashboard(result)
	if err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(html)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "dashboard.html")
	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write dashboard file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("Dashboard saved to: %s\n", filename)
	}
	return nil
}

func writeCSVFile(path string, result *dto.AnalysisResult, write func(*dto.AnalysisResult, *csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := write(result, writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeForecastsCSV(result *dto.AnalysisResult, w *csv.Writer) error {
	if err := w.Write([]string{"sku", "location", "method", "pattern", "period", "value", "lower", "upper", "mape"}); err != nil {
		return err
	}
	for _, fc := range result.Forecasts {
		for _, point := range fc.Points {
			row := []string{
				string(fc.SKU), fc.Location, fc.Method, fc.Pattern.String(),
				point.Period.Format("2006-01-02"),
				formatFloat(point.Value), formatFloat(point.Lower), formatFloat(point.Upper),
				formatFloat(fc.Accuracy.MAPE),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePoliciesCSV(result *dto.AnalysisResult, w *csv.Writer) error {
	if err := w.Write([]string{"sku", "location", "eoq", "safety_stock", "reorder_point", "annual_demand", "orders_per_year", "inventory_turnover", "days_of_supply", "annual_holding_cost"}); err != nil {
		return err
	}
	for _, policy := range result.Policies {
		row := []string{
			string(policy.SKU), policy.Location,
			strconv.FormatInt(int64(policy.EOQ), 10),
			strconv.FormatInt(int64(policy.SafetyStock), 10),
			strconv.FormatInt(int64(policy.ReorderPoint), 10),
			formatFloat(policy.AnnualDemand),
			formatFloat(policy.OrdersPerYear),
			formatFloat(policy.Turnover),
			formatFloat(policy.DaysOfSupply),
			policy.AnnualHoldingCost.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeABCCSV(result *dto.AnalysisResult, w *csv.Writer) error {
	if err := w.Write([]string{"sku", "class", "annual_value", "value_share", "cumulative_share"}); err != nil {
		return err
	}
	if result.ABC == nil {
		return nil
	}
	for _, entry := range result.ABC.Entries {
		row := []string{
			string(entry.SKU), entry.Class.String(),
			entry.AnnualValue.StringFixed(2),
			formatFloat(entry.ValueShare),
			formatFloat(entry.CumulativeShare),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSupplierRisksCSV(result *dto.AnalysisResult, w *csv.Writer) error {
	if err := w.Write([]string{"supplier_id", "name", "score", "level", "sole_source_skus"}); err != nil {
		return err
	}
	for _, sr := range result.SupplierRisks {
		row := []string{
			sr.SupplierID, sr.Name,
			formatFloat(sr.Score), sr.Level.String(),
			strconv.Itoa(sr.SoleSourceSKUs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeStockoutRisksCSV(result *dto.AnalysisResult, w *csv.Writer) error {
	if err := w.Write([]string{"sku", "location", "probability", "days_of_cover", "net_position", "level"}); err != nil {
		return err
	}
	for _, sr := range result.StockoutRisks {
		row := []string{
			string(sr.SKU), sr.Location,
			formatFloat(sr.Probability),
			formatFloat(sr.DaysOfCover),
			strconv.FormatInt(int64(sr.NetPosition), 10),
			sr.Level.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
