package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avelkar/supplysight/pkg/application/services/forecast"
	"github.com/avelkar/supplysight/pkg/application/services/inventory"
	"github.com/avelkar/supplysight/pkg/application/services/orchestration"
	"github.com/avelkar/supplysight/pkg/application/services/risk"
	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/infrastructure/config"
	"github.com/avelkar/supplysight/pkg/infrastructure/events"
	"github.com/avelkar/supplysight/pkg/infrastructure/logging"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/csv"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/memory"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/postgres"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/s3"
	"github.com/avelkar/supplysight/pkg/interfaces/cli/output"
)

// Config holds configuration for the analyze command
type Config struct {
	ConfigFile string
	DataDir    string
	OutputDir  string
	Format     string
	Frequency  string
	Horizon    int
	Verbose    bool
	Help       bool
}

// AnalyzeCommand runs the full analytics pipeline over a dataset
type AnalyzeCommand struct {
	config Config
}

// NewAnalyzeCommand creates an analyze command with the given configuration
func NewAnalyzeCommand(config Config) *AnalyzeCommand {
	return &AnalyzeCommand{config: config}
}

// Execute runs the analyze command
func (c *AnalyzeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	appConfig, err := resolveAppConfig(c.config.ConfigFile, c.config.DataDir, c.config.Frequency, c.config.Horizon)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       appConfig.Logging.Level,
		Format:      appConfig.Logging.Format,
		Development: appConfig.Logging.Development,
	})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	if c.config.Verbose {
		fmt.Printf("Loading dataset from %s source\n", appConfig.Data.Source)
	}

	repos, counts, err := loadRepositories(ctx, appConfig, logger)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("Loaded %d items, %d sales records, %d snapshots, %d suppliers\n",
			counts.items, counts.sales, counts.snapshots, counts.suppliers)
	}

	pipelineConfig, err := buildPipelineConfig(appConfig)
	if err != nil {
		return err
	}

	pipeline, err := orchestration.NewAnalyticsPipeline(
		pipelineConfig, repos, events.NewInMemoryEventStore(logger), logger)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	started := time.Now()
	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Elapsed:   time.Since(started),
	})
}

// datasetCounts reports what was loaded from the dataset source
type datasetCounts struct {
	items, sales, snapshots, suppliers int
}

// resolveAppConfig loads the YAML config (or defaults) and applies the
// command line overrides on top
func resolveAppConfig(configFile, dataDir, frequency string, horizon int) (*config.AppConfig, error) {
	var appConfig *config.AppConfig
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		appConfig = loaded
	} else {
		appConfig = config.DefaultConfig()
	}

	if dataDir != "" {
		appConfig.Data.Dir = dataDir
	}
	if frequency != "" {
		appConfig.Forecast.Frequency = frequency
	}
	if horizon > 0 {
		appConfig.Forecast.Horizon = horizon
	}

	if err := appConfig.Validate(); err != nil {
		return nil, err
	}
	return appConfig, nil
}

// loadRepositories builds the pipeline's repositories from the configured
// dataset source: CSV files (local or S3) loaded into memory, or a live
// PostgreSQL database
func loadRepositories(
	ctx context.Context,
	appConfig *config.AppConfig,
	logger *zap.Logger,
) (orchestration.Repositories, datasetCounts, error) {
	var repos orchestration.Repositories
	var counts datasetCounts

	if appConfig.Data.Source == "postgres" {
		return loadPostgresRepositories(ctx, appConfig, logger)
	}

	source, err := buildDatasetSource(ctx, appConfig, logger)
	if err != nil {
		return repos, counts, err
	}

	options := csv.Options{Encoding: appConfig.Data.Encoding}
	if appConfig.Data.Delimiter != "" {
		options.Delimiter = rune(appConfig.Data.Delimiter[0])
	}
	loader := csv.NewLoader(source, options)

	items, err := loader.LoadItems(ctx)
	if err != nil {
		return repos, counts, fmt.Errorf("error loading items: %w", err)
	}
	sales, err := loader.LoadSales(ctx)
	if err != nil {
		return repos, counts, fmt.Errorf("error loading sales: %w", err)
	}
	snapshots, err := loader.LoadSnapshots(ctx)
	if err != nil {
		return repos, counts, fmt.Errorf("error loading inventory: %w", err)
	}
	suppliers, err := loader.LoadSuppliers(ctx)
	if err != nil {
		return repos, counts, fmt.Errorf("error loading suppliers: %w", err)
	}

	itemRepo := memory.NewItemRepository(len(items))
	if err := itemRepo.LoadItems(items); err != nil {
		return repos, counts, fmt.Errorf("failed to load items into repository: %w", err)
	}
	salesRepo := memory.NewSalesRepository(len(sales))
	if err := salesRepo.LoadSales(sales); err != nil {
		return repos, counts, fmt.Errorf("failed to load sales into repository: %w", err)
	}
	inventoryRepo := memory.NewInventoryRepository(len(snapshots))
	if err := inventoryRepo.LoadSnapshots(snapshots); err != nil {
		return repos, counts, fmt.Errorf("failed to load snapshots into repository: %w", err)
	}
	supplierRepo := memory.NewSupplierRepository(len(suppliers))
	if err := supplierRepo.LoadSuppliers(suppliers); err != nil {
		return repos, counts, fmt.Errorf("failed to load suppliers into repository: %w", err)
	}

	repos = orchestration.Repositories{
		Items:     itemRepo,
		Sales:     salesRepo,
		Inventory: inventoryRepo,
		Suppliers: supplierRepo,
	}
	counts = datasetCounts{
		items:     len(items),
		sales:     len(sales),
		snapshots: len(snapshots),
		suppliers: len(suppliers),
	}
	return repos, counts, nil
}

// loadPostgresRepositories connects to the configured database, applies
// pending migrations and serves the pipeline straight from it
func loadPostgresRepositories(
	ctx context.Context,
	appConfig *config.AppConfig,
	logger *zap.Logger,
) (orchestration.Repositories, datasetCounts, error) {
	var repos orchestration.Repositories
	var counts datasetCounts

	db, err := postgres.Open(ctx, postgres.Config{
		Host:     appConfig.Postgres.Host,
		Port:     appConfig.Postgres.Port,
		User:     appConfig.Postgres.User,
		Password: appConfig.Postgres.Password,
		DBName:   appConfig.Postgres.DBName,
		SSLMode:  appConfig.Postgres.SSLMode,
	})
	if err != nil {
		return repos, counts, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return repos, counts, fmt.Errorf("failed to apply migrations: %w", err)
	}

	itemRepo := postgres.NewItemRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)

	items, err := itemRepo.GetAllItems()
	if err != nil {
		return repos, counts, fmt.Errorf("error loading items: %w", err)
	}
	sales, err := salesRepo.GetAllSales()
	if err != nil {
		return repos, counts, fmt.Errorf("error loading sales: %w", err)
	}
	snapshots, err := inventoryRepo.GetAllSnapshots()
	if err != nil {
		return repos, counts, fmt.Errorf("error loading inventory: %w", err)
	}
	suppliers, err := supplierRepo.GetAllSuppliers()
	if err != nil {
		return repos, counts, fmt.Errorf("error loading suppliers: %w", err)
	}

	repos = orchestration.Repositories{
		Items:     itemRepo,
		Sales:     salesRepo,
		Inventory: inventoryRepo,
		Suppliers: supplierRepo,
	}
	counts = datasetCounts{
		items:     len(items),
		sales:     len(sales),
		snapshots: len(snapshots),
		suppliers: len(suppliers),
	}
	return repos, counts, nil
}

// buildDatasetSource picks the local directory or S3 bucket source
func buildDatasetSource(
	ctx context.Context,
	appConfig *config.AppConfig,
	logger *zap.Logger,
) (csv.DatasetSource, error) {
	switch appConfig.Data.Source {
	case "s3":
		source, err := s3.NewSource(ctx, s3.Config{
			Bucket:          appConfig.Data.S3.Bucket,
			Prefix:          appConfig.Data.S3.Prefix,
			Region:          appConfig.Data.S3.Region,
			Endpoint:        appConfig.Data.S3.Endpoint,
			AccessKeyID:     appConfig.Data.S3.AccessKeyID,
			SecretAccessKey: appConfig.Data.S3.SecretAccessKey,
			UseSSL:          appConfig.Data.S3.UseSSL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to S3: %w", err)
		}
		if err := source.Ping(ctx); err != nil {
			return nil, fmt.Errorf("S3 bucket not reachable: %w", err)
		}
		return source, nil
	default:
		return csv.NewDirSource(appConfig.Data.Dir), nil
	}
}

// buildPipelineConfig maps the application config onto the pipeline's
// service configurations
func buildPipelineConfig(appConfig *config.AppConfig) (orchestration.Config, error) {
	frequency, err := parseFrequency(appConfig.Forecast.Frequency)
	if err != nil {
		return orchestration.Config{}, err
	}

	selector := forecast.DefaultSelectorConfig()
	selector.SeasonLength = appConfig.Forecast.SeasonLength
	selector.MinTrainWindow = appConfig.Forecast.MinHistory
	selector.Metric = appConfig.Forecast.Metric
	if len(appConfig.Forecast.SmoothingGrid) > 0 {
		selector.SmoothingGrid = appConfig.Forecast.SmoothingGrid
	}

	return orchestration.Config{
		Frequency:    frequency,
		Horizon:      appConfig.Forecast.Horizon,
		OutlierFence: appConfig.Forecast.OutlierFence,
		Selector:     selector,
		Inventory: inventory.Config{
			OrderingCost: decimal.NewFromFloat(appConfig.Inventory.OrderingCost),
			HoldingRate:  appConfig.Inventory.HoldingRate,
			ServiceLevel: appConfig.Inventory.ServiceLevel,
		},
		ABC: inventory.ABCThresholds{
			AShare: appConfig.Inventory.ABCClassA,
			BShare: appConfig.Inventory.ABCClassB,
		},
		RiskWeights: risk.Weights{
			LeadTimeVariability: appConfig.Risk.LeadTimeWeight,
			FillRate:            appConfig.Risk.FillRateWeight,
			OnTime:              appConfig.Risk.OnTimeWeight,
			DefectRate:          appConfig.Risk.DefectWeight,
			SoleSource:          appConfig.Risk.SoleSourceWeight,
		},
	}, nil
}

// parseFrequency maps the config string onto the domain enum
func parseFrequency(value string) (entities.Frequency, error) {
	switch value {
	case "daily":
		return entities.Daily, nil
	case "weekly":
		return entities.Weekly, nil
	case "monthly":
		return entities.Monthly, nil
	default:
		return entities.Weekly, fmt.Errorf("unknown frequency %q", value)
	}
}

// showHelp displays the help message
func (c *AnalyzeCommand) showHelp() {
	fmt.Print(`supplysight analyze - run the full supply chain analysis pipeline

USAGE:
    supplysight analyze -data <directory>         # Use dataset directory
    supplysight analyze -config config.yaml       # Use YAML configuration

OPTIONS:
    -data <dir>        Path to dataset directory containing CSV files
    -config <file>     Path to YAML configuration file
    -output <dir>      Output directory for results (optional)
    -format <fmt>      Output format: text, json, csv, html (default: text)
    -frequency <f>     Demand bucketing: daily, weekly, monthly
    -horizon <n>       Forecast horizon in periods
    -verbose           Enable verbose output
    -help              Show this help message

DATASET DIRECTORY STRUCTURE:
    dataset_name/
    ├── items.csv       # Item master data
    ├── sales.csv       # Sales history
    ├── inventory.csv   # Stock snapshots
    └── suppliers.csv   # Supplier master

CSV FILE FORMATS:

items.csv:
    sku,description,category,unit_cost,unit_price,supplier_id,lead_time_days,lead_time_std_dev,unit_of_measure
    WIDGET-A,Widget type A,widgets,4.50,12.99,SUP-ACME,14,2.5,each

sales.csv:
    sku,date,quantity,location,channel,revenue
    WIDGET-A,2025-01-06,12,DC-EAST,web,155.88

inventory.csv:
    sku,location,on_hand,on_order,allocated,as_of
    WIDGET-A,DC-EAST,840,210,84,2025-06-01

suppliers.csv:
    supplier_id,name,country,avg_lead_time_days,lead_time_std_dev,fill_rate,on_time_rate,defect_rate
    SUP-ACME,Acme Corp,US,14,2.5,0.97,0.94,0.01

EXAMPLES:
    # Analyze a local dataset with text output
    supplysight analyze -data examples/retail -verbose

    # Generate JSON results into a directory
    supplysight analyze -data examples/retail -format json -output results/

    # Monthly buckets with a 6 period horizon
    supplysight analyze -data examples/retail -frequency monthly -horizon 6

    # Use an S3-backed dataset via config
    supplysight analyze -config config.yaml -format html -output results/
`)
}
