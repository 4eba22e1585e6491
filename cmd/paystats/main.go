// Package main provides the CLI entry point for paystats.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/paystats-go/internal/config"
	"github.com/ukaji3/paystats-go/internal/logging"
	"github.com/ukaji3/paystats-go/pkg/paystats"
	"github.com/ukaji3/paystats-go/pkg/paystats/dashboard"
	"github.com/ukaji3/paystats-go/pkg/paystats/output"
)

var (
	configPath string
	inputDir   string
	outputDir  string
	pretty     bool
	year       int
	chartsDir  string
	addr       string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "paystats",
		Short: "Extract digital payments statistics from spreadsheet reports",
		Long: `paystats extracts the per-capita, payment instrument and EFTPOS/ATM
tables from their spreadsheet reports, derives instrument shares and
writes flat CSV files for the dashboard.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "Directory of the CSV files (overrides config)")

	etlCmd := &cobra.Command{
		Use:   "etl",
		Short: "Extract the report tables and write the CSV files",
		Args:  cobra.NoArgs,
		RunE:  runETL,
	}
	etlCmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of the report workbooks (overrides config)")
	etlCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON run summary")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard charts of one year as PNG files",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&year, "year", 0, "Selected year (default: latest year common to all tables)")
	renderCmd.Flags().StringVar(&chartsDir, "charts-dir", "", "Directory for the PNG files (overrides config)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	rootCmd.AddCommand(etlCmd, renderCmd, serveCmd)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func setup() (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if inputDir != "" {
		cfg.Paths.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.Paths.OutputDir = outputDir
	}
	if chartsDir != "" {
		cfg.Dashboard.ChartsDir = chartsDir
	}
	if addr != "" {
		cfg.Dashboard.Addr = addr
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, closer, nil
}

func runETL(cmd *cobra.Command, args []string) error {
	cfg, logger, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	summary, err := paystats.Run(optionsFromConfig(cfg, logger))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	jsonData, err := output.ToJSON(summary, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	data, err := dashboard.Load(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	selected := year
	if selected == 0 {
		selected = dashboard.DefaultYear(data)
	}

	paths, err := dashboard.RenderView(dashboard.BuildView(data, selected), cfg.Dashboard.ChartsDir)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Info("Rendered charts",
		slog.Int("year", selected),
		slog.String("dir", cfg.Dashboard.ChartsDir),
		slog.Int("charts", len(paths)))
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	data, err := dashboard.Load(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return dashboard.NewServer(data, logger).ListenAndServe(ctx, cfg.Dashboard.Addr)
}

// optionsFromConfig maps the loaded configuration onto ETL options.
func optionsFromConfig(cfg *config.Config, logger *slog.Logger) paystats.Options {
	opts := paystats.DefaultOptions()
	opts.InputDir = cfg.Paths.InputDir
	opts.OutputDir = cfg.Paths.OutputDir
	opts.T1 = paystats.Source{File: cfg.Sources.T1.File, Sheet: cfg.Sources.T1.Sheet}
	opts.T2 = paystats.Source{File: cfg.Sources.T2.File, Sheet: cfg.Sources.T2.Sheet}
	opts.T5 = paystats.Source{File: cfg.Sources.T5.File, Sheet: cfg.Sources.T5.Sheet}
	opts.PerCapita.LabelPrefix = cfg.Extract.PerCapitaPrefix
	opts.Instruments.PeriodHeader = cfg.Extract.PeriodHeader
	if cfg.Extract.DefaultPeriodCol != nil {
		opts.Instruments.DefaultPeriodCol = *cfg.Extract.DefaultPeriodCol
	}
	opts.Instruments.HeaderScanRows = cfg.Extract.HeaderScanRows
	opts.Logger = logger
	return opts
}
