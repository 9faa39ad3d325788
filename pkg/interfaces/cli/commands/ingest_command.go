package commands

import (
	"context"
	"fmt"

	"github.com/avelkar/supplysight/pkg/infrastructure/logging"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/csv"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/postgres"
)

// IngestConfig holds configuration for the ingest command
type IngestConfig struct {
	ConfigFile string
	DataDir    string
	Verbose    bool
	Help       bool
}

// IngestCommand loads a CSV dataset into PostgreSQL so later runs can use
// data.source postgres
type IngestCommand struct {
	config IngestConfig
}

// NewIngestCommand creates an ingest command
func NewIngestCommand(config IngestConfig) *IngestCommand {
	return &IngestCommand{config: config}
}

// Execute runs the ingest command
func (c *IngestCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	appConfig, err := resolveAppConfig(c.config.ConfigFile, c.config.DataDir, "", 0)
	if err != nil {
		return err
	}
	if appConfig.Data.Source == "postgres" {
		return fmt.Errorf("ingest reads from CSV; set data.source to local or s3")
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

	source, err := buildDatasetSource(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	options := csv.Options{Encoding: appConfig.Data.Encoding}
	if appConfig.Data.Delimiter != "" {
		options.Delimiter = rune(appConfig.Data.Delimiter[0])
	}
	loader := csv.NewLoader(source, options)

	items, err := loader.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("error loading items: %w", err)
	}
	sales, err := loader.LoadSales(ctx)
	if err != nil {
		return fmt.Errorf("error loading sales: %w", err)
	}
	snapshots, err := loader.LoadSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}
	suppliers, err := loader.LoadSuppliers(ctx)
	if err != nil {
		return fmt.Errorf("error loading suppliers: %w", err)
	}

	db, err := postgres.Open(ctx, postgres.Config{
		Host:     appConfig.Postgres.Host,
		Port:     appConfig.Postgres.Port,
		User:     appConfig.Postgres.User,
		Password: appConfig.Postgres.Password,
		DBName:   appConfig.Postgres.DBName,
		SSLMode:  appConfig.Postgres.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if err := postgres.NewSupplierRepository(db).LoadSuppliers(suppliers); err != nil {
		return fmt.Errorf("failed to ingest suppliers: %w", err)
	}
	if err := postgres.NewItemRepository(db).LoadItems(items); err != nil {
		return fmt.Errorf("failed to ingest items: %w", err)
	}
	if err := postgres.NewSalesRepository(db).LoadSales(sales); err != nil {
		return fmt.Errorf("failed to ingest sales: %w", err)
	}
	if err := postgres.NewInventoryRepository(db).LoadSnapshots(snapshots); err != nil {
		return fmt.Errorf("failed to ingest snapshots: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Ingested %d items, %d sales records, %d snapshots, %d suppliers\n",
			len(items), len(sales), len(snapshots), len(suppliers))
	}
	return nil
}

// showHelp displays the help message
func (c *IngestCommand) showHelp() {
	fmt.Print(`supplysight ingest - load a CSV dataset into PostgreSQL

USAGE:
    supplysight ingest -data <directory> [-config config.yaml]

OPTIONS:
    -data <dir>      Path to dataset directory containing CSV files
    -config <file>   Path to YAML configuration file (postgres settings)
    -verbose         Enable verbose output
    -help            Show this help message

Connection settings come from the config file's postgres section, falling
back to POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD and
POSTGRES_NAME environment variables. Pending schema migrations are applied
before loading. Sales history is bulk inserted.

After ingesting, set data.source to postgres to analyze from the database:

    supplysight ingest -data examples/retail
    supplysight analyze -config config-postgres.yaml
`)
}
