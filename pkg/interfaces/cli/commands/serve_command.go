package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/avelkar/supplysight/pkg/application/services/orchestration"
	"github.com/avelkar/supplysight/pkg/infrastructure/events"
	"github.com/avelkar/supplysight/pkg/infrastructure/logging"
	"github.com/avelkar/supplysight/pkg/interfaces/api"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	ConfigFile string
	DataDir    string
	Addr       string
	Verbose    bool
	Help       bool
}

// ServeCommand runs the pipeline once and serves the results over HTTP
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a serve command
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute runs the serve command. It blocks until SIGINT or SIGTERM.
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	appConfig, err := resolveAppConfig(c.config.ConfigFile, c.config.DataDir, "", 0)
	if err != nil {
		return err
	}
	if c.config.Addr != "" {
		appConfig.Server.Addr = c.config.Addr
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

	repos, counts, err := loadRepositories(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		zap.Int("items", counts.items),
		zap.Int("sales", counts.sales),
		zap.Int("snapshots", counts.snapshots),
		zap.Int("suppliers", counts.suppliers))

	pipelineConfig, err := buildPipelineConfig(appConfig)
	if err != nil {
		return err
	}
	pipeline, err := orchestration.NewAnalyticsPipeline(
		pipelineConfig, repos, events.NewInMemoryEventStore(logger), logger)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Analysis complete: %d forecasts, %d policies. Serving on %s\n",
			len(result.Forecasts), len(result.Policies), appConfig.Server.Addr)
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.New(appConfig.Server, result, logger)
	return server.Run(signalCtx)
}

// showHelp displays the help message
func (c *ServeCommand) showHelp() {
	fmt.Print(`supplysight serve - run the analysis and serve a dashboard and JSON API

USAGE:
    supplysight serve -data <directory> [-addr :8080]

OPTIONS:
    -data <dir>      Path to dataset directory containing CSV files
    -config <file>   Path to YAML configuration file
    -addr <addr>     Listen address (default from config, :8080)
    -verbose         Enable verbose output
    -help            Show this help message

ENDPOINTS:
    /                      HTML dashboard
    /api/summary           Run overview
    /api/forecasts         All forecasts
    /api/forecasts/{sku}   Forecasts for one SKU
    /api/policies          Inventory policies
    /api/abc               ABC classification
    /api/risk/suppliers    Supplier risk scores
    /api/risk/stockouts    Stockout risk register
    /healthz               Health check
    /metrics               Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM, draining in-flight
requests up to the configured timeout.

EXAMPLES:
    supplysight serve -data examples/retail
    supplysight serve -config config.yaml -addr :9090
`)
}
