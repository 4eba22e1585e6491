// Package config loads paystats settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. PAYSTATS_PATHS_INPUT_DIR.
const EnvPrefix = "PAYSTATS"

// Config is the full application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Sources   SourcesConfig   `yaml:"sources" envconfig:"SOURCES"`
	Extract   ExtractConfig   `yaml:"extract" envconfig:"EXTRACT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Dashboard DashboardConfig `yaml:"dashboard" envconfig:"DASHBOARD"`
}

// PathsConfig holds input and output directories.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// SourceConfig names one workbook and sheet.
type SourceConfig struct {
	File  string `yaml:"file" envconfig:"FILE"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// SourcesConfig holds the three report sources.
type SourcesConfig struct {
	T1 SourceConfig `yaml:"t1" envconfig:"T1"`
	T2 SourceConfig `yaml:"t2" envconfig:"T2"`
	T5 SourceConfig `yaml:"t5" envconfig:"T5"`
}

// ExtractConfig tunes the layout heuristics that change between report
// editions.
type ExtractConfig struct {
	PerCapitaPrefix  string `yaml:"per_capita_prefix" envconfig:"PER_CAPITA_PREFIX"`
	PeriodHeader     string `yaml:"period_header" envconfig:"PERIOD_HEADER"`
	DefaultPeriodCol *int   `yaml:"default_period_col" envconfig:"DEFAULT_PERIOD_COL"`
	HeaderScanRows   int    `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DashboardConfig configures the dashboard server and renderer.
type DashboardConfig struct {
	Addr      string `yaml:"addr" envconfig:"ADDR"`
	ChartsDir string `yaml:"charts_dir" envconfig:"CHARTS_DIR"`
}

// Load reads the optional YAML file at path (expanding ${VAR} references),
// overlays environment variables, applies defaults and validates.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	var env Config
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	cfg.merge(env)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// merge overlays every non-zero environment value.
func (c *Config) merge(env Config) {
	setString(&c.Paths.InputDir, env.Paths.InputDir)
	setString(&c.Paths.OutputDir, env.Paths.OutputDir)
	for _, pair := range []struct{ dst, src *SourceConfig }{
		{&c.Sources.T1, &env.Sources.T1},
		{&c.Sources.T2, &env.Sources.T2},
		{&c.Sources.T5, &env.Sources.T5},
	} {
		setString(&pair.dst.File, pair.src.File)
		setString(&pair.dst.Sheet, pair.src.Sheet)
	}
	setString(&c.Extract.PerCapitaPrefix, env.Extract.PerCapitaPrefix)
	setString(&c.Extract.PeriodHeader, env.Extract.PeriodHeader)
	if env.Extract.DefaultPeriodCol != nil {
		c.Extract.DefaultPeriodCol = env.Extract.DefaultPeriodCol
	}
	if env.Extract.HeaderScanRows != 0 {
		c.Extract.HeaderScanRows = env.Extract.HeaderScanRows
	}
	setString(&c.Logging.Level, env.Logging.Level)
	setString(&c.Logging.Format, env.Logging.Format)
	setString(&c.Logging.Output, env.Logging.Output)
	setString(&c.Logging.FilePath, env.Logging.FilePath)
	setString(&c.Dashboard.Addr, env.Dashboard.Addr)
	setString(&c.Dashboard.ChartsDir, env.Dashboard.ChartsDir)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Paths.InputDir == "" {
		c.Paths.InputDir = "."
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "processed_data"
	}
	if c.Sources.T1.File == "" {
		c.Sources.T1.File = "T1 - Transactions Per Capita.xlsx"
	}
	if c.Sources.T1.Sheet == "" {
		c.Sources.T1.Sheet = "T1 - Transactions Per Capita"
	}
	if c.Sources.T2.File == "" {
		c.Sources.T2.File = "T2 - Payment Instruments.xlsx"
	}
	if c.Sources.T2.Sheet == "" {
		c.Sources.T2.Sheet = "T2.1 - Volume & Value"
	}
	if c.Sources.T5.File == "" {
		c.Sources.T5.File = "T5 - EFTPOS Terminal & ATM.xlsx"
	}
	if c.Sources.T5.Sheet == "" {
		c.Sources.T5.Sheet = "T5 - EFTPOS Terminal & ATM"
	}
	if c.Extract.PerCapitaPrefix == "" {
		c.Extract.PerCapitaPrefix = "E-payments"
	}
	if c.Extract.PeriodHeader == "" {
		c.Extract.PeriodHeader = "payment instruments"
	}
	if c.Extract.DefaultPeriodCol == nil {
		col := 1
		c.Extract.DefaultPeriodCol = &col
	}
	if c.Extract.HeaderScanRows == 0 {
		c.Extract.HeaderScanRows = 12
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/paystats.log"
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = ":8080"
	}
	if c.Dashboard.ChartsDir == "" {
		c.Dashboard.ChartsDir = "charts"
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}
	if c.Extract.DefaultPeriodCol != nil && *c.Extract.DefaultPeriodCol < 0 {
		return fmt.Errorf("default_period_col must not be negative, got %d", *c.Extract.DefaultPeriodCol)
	}
	if c.Extract.HeaderScanRows < 1 {
		return fmt.Errorf("header_scan_rows must be positive, got %d", c.Extract.HeaderScanRows)
	}
	return nil
}
