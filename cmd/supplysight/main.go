package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/avelkar/supplysight/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	var err error

	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:])
	case "generate":
		err = runGenerate(ctx, os.Args[2:])
	case "ingest":
		err = runIngest(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "help", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("analyze", flag.ExitOnError)
	var (
		configFile = flags.String("config", "", "Path to YAML configuration file")
		dataDir    = flags.String("data", "", "Path to dataset directory containing CSV files")
		outputDir  = flags.String("output", "", "Output directory for results (optional)")
		format     = flags.String("format", "text", "Output format: text, json, csv, html")
		frequency  = flags.String("frequency", "", "Demand bucketing: daily, weekly, monthly")
		horizon    = flags.Int("horizon", 0, "Forecast horizon in periods")
		verbose    = flags.Bool("verbose", false, "Enable verbose output")
		help       = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewAnalyzeCommand(commands.Config{
		ConfigFile: *configFile,
		DataDir:    *dataDir,
		OutputDir:  *outputDir,
		Format:     *format,
		Frequency:  *frequency,
		Horizon:    *horizon,
		Verbose:    *verbose,
		Help:       *help,
	})
	return cmd.Execute(ctx)
}

func runGenerate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		items     = flags.Int("items", 20, "Number of SKUs to generate")
		days      = flags.Int("days", 365, "Days of sales history")
		locations = flags.Int("locations", 1, "Number of stocking locations")
		suppliers = flags.Int("suppliers", 0, "Number of suppliers (default: items/10)")
		sparsity  = flags.Float64("sparsity", 0, "Zero-demand share for intermittent SKUs")
		outputDir = flags.String("out", "dataset", "Output directory")
		seed      = flags.Int64("seed", 0, "Random seed for reproducible output")
		verbose   = flags.Bool("verbose", false, "Enable verbose output")
		help      = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Items:     *items,
		Days:      *days,
		Locations: *locations,
		Suppliers: *suppliers,
		Sparsity:  *sparsity,
		OutputDir: *outputDir,
		Seed:      *seed,
		Verbose:   *verbose,
		Help:      *help,
	})
	return cmd.Execute(ctx)
}

func runIngest(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("ingest", flag.ExitOnError)
	var (
		configFile = flags.String("config", "", "Path to YAML configuration file")
		dataDir    = flags.String("data", "", "Path to dataset directory containing CSV files")
		verbose    = flags.Bool("verbose", false, "Enable verbose output")
		help       = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewIngestCommand(commands.IngestConfig{
		ConfigFile: *configFile,
		DataDir:    *dataDir,
		Verbose:    *verbose,
		Help:       *help,
	})
	return cmd.Execute(ctx)
}

func runServe(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		configFile = flags.String("config", "", "Path to YAML configuration file")
		dataDir    = flags.String("data", "", "Path to dataset directory containing CSV files")
		addr       = flags.String("addr", "", "Listen address (default from config)")
		verbose    = flags.Bool("verbose", false, "Enable verbose output")
		help       = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewServeCommand(commands.ServeConfig{
		ConfigFile: *configFile,
		DataDir:    *dataDir,
		Addr:       *addr,
		Verbose:    *verbose,
		Help:       *help,
	})
	return cmd.Execute(ctx)
}

func printUsage() {
	fmt.Print(`supplysight - supply chain demand forecasting and inventory analytics

USAGE:
    supplysight <command> [options]

COMMANDS:
    analyze     Run the full analysis pipeline over a dataset
    generate    Create a synthetic dataset for demos and testing
    ingest      Load a CSV dataset into PostgreSQL
    serve       Run the analysis and serve a dashboard and JSON API
    help        Show this help message

Run 'supplysight <command> -help' for command-specific options.
`)
}
