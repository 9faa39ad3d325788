package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Standard dataset file names
const (
	ItemsFile     = "items.csv"
	SalesFile     = "sales.csv"
	InventoryFile = "inventory.csv"
	SuppliersFile = "suppliers.csv"
)

const dateLayout = "2006-01-02"

// Options controls how dataset files are decoded
type Options struct {
	// Delimiter is the field separator (default comma)
	Delimiter rune
	// Encoding names the file charset: "utf-8" (default) or "windows-1251"
	Encoding string
}

// Loader loads supply chain datasets from CSV files
type Loader struct {
	source  DatasetSource
	options Options
}

// NewLoader creates a CSV loader over a dataset source
func NewLoader(source DatasetSource, options Options) *Loader {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	return &Loader{source: source, options: options}
}

// readAll opens a dataset file and reads all its rows
func (l *Loader) readAll(ctx context.Context, name string) ([][]string, error) {
	file, err := l.source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	switch l.options.Encoding {
	case "", "utf-8":
	case "windows-1251":
		reader = transform.NewReader(file, charmap.Windows1251.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", l.options.Encoding)
	}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = l.options.Delimiter
	csvReader.LazyQuotes = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return records, nil
}

// validateHeader checks that the actual header matches the expected columns
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if header[i] != col {
			return false
		}
	}
	return true
}

// LoadItems loads the item master from items.csv
func (l *Loader) LoadItems(ctx context.Context) ([]*entities.Item, error) {
	records, err := l.readAll(ctx, ItemsFile)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("items CSV must have header and at least one data row")
	}

	expectedHeader := []string{
		"sku", "description", "category", "unit_cost", "unit_price",
		"supplier_id", "lead_time_days", "lead_time_std_dev", "unit_of_measure",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var items []*entities.Item
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItem(record []string) (*entities.Item, error) {
	unitCost, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid unit_cost %q: %w", record[3], err)
	}
	unitPrice, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid unit_price %q: %w", record[4], err)
	}
	leadTime, err := strconv.Atoi(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days %q: %w", record[6], err)
	}
	leadStdDev, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_std_dev %q: %w", record[7], err)
	}

	return entities.NewItem(
		entities.SKU(record[0]), record[1], record[2],
		unitCost, unitPrice, record[5],
		leadTime, leadStdDev, record[8],
	)
}

// LoadSales loads sales history from sales.csv
func (l *Loader) LoadSales(ctx context.Context) ([]*entities.SalesRecord, error) {
	records, err := l.readAll(ctx, SalesFile)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("sales CSV must have header and at least one data row")
	}

	expectedHeader := []string{"sku", "date", "quantity", "location", "channel", "revenue"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("sales CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var sales []*entities.SalesRecord
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("sales CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		sale, err := parseSalesRecord(record)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func parseSalesRecord(record []string) (*entities.SalesRecord, error) {
	date, err := time.Parse(dateLayout, record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", record[1], err)
	}
	quantity, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", record[2], err)
	}
	revenue, err := decimal.NewFromString(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid revenue %q: %w", record[5], err)
	}

	return entities.NewSalesRecord(
		entities.SKU(record[0]), date, entities.Quantity(quantity),
		record[3], record[4], revenue,
	)
}

// LoadSnapshots loads stock positions from inventory.csv
func (l *Loader) LoadSnapshots(ctx context.Context) ([]*entities.StockSnapshot, error) {
	records, err := l.readAll(ctx, InventoryFile)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("inventory CSV must have header and at least one data row")
	}

	expectedHeader := []string{"sku", "location", "on_hand", "on_order", "allocated", "as_of"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var snapshots []*entities.StockSnapshot
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("inventory CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		snapshot, err := parseSnapshot(record)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func parseSnapshot(record []string) (*entities.StockSnapshot, error) {
	onHand, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid on_hand %q: %w", record[2], err)
	}
	onOrder, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid on_order %q: %w", record[3], err)
	}
	allocated, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid allocated %q: %w", record[4], err)
	}
	asOf, err := time.Parse(dateLayout, record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid as_of %q: %w", record[5], err)
	}

	return entities.NewStockSnapshot(
		entities.SKU(record[0]), record[1],
		entities.Quantity(onHand), entities.Quantity(onOrder), entities.Quantity(allocated),
		asOf,
	)
}

// LoadSuppliers loads the supplier master from suppliers.csv
func (l *Loader) LoadSuppliers(ctx context.Context) ([]*entities.Supplier, error) {
	records, err := l.readAll(ctx, SuppliersFile)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("suppliers CSV must have header and at least one data row")
	}

	expectedHeader := []string{
		"supplier_id", "name", "country", "avg_lead_time_days",
		"lead_time_std_dev", "fill_rate", "on_time_rate", "defect_rate",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("suppliers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var suppliers []*entities.Supplier
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("suppliers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		supplier, err := parseSupplier(record)
		if err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: %w", i+2, err)
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

func parseSupplier(record []string) (*entities.Supplier, error) {
	floats := make([]float64, 5)
	names := []string{"avg_lead_time_days", "lead_time_std_dev", "fill_rate", "on_time_rate", "defect_rate"}
	for i := range floats {
		v, err := strconv.ParseFloat(record[3+i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", names[i], record[3+i], err)
		}
		floats[i] = v
	}

	return entities.NewSupplier(
		record[0], record[1], record[2],
		floats[0], floats[1], floats[2], floats[3], floats[4],
	)
}
