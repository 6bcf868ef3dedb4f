package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete fillpnl configuration.
type Config struct {
	Accounting AccountingConfig `json:"accounting" yaml:"accounting"`
	Report     ReportConfig     `json:"report" yaml:"report"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// AccountingConfig controls how realized PnL is scaled.
type AccountingConfig struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// ReportConfig controls the chart and navigator layout.
type ReportConfig struct {
	PageSize   int    `json:"page_size" yaml:"page_size"`
	BarWidth   int    `json:"bar_width" yaml:"bar_width"`
	ChartWidth int    `json:"chart_width" yaml:"chart_width"`
	GroupBy    string `json:"group_by" yaml:"group_by"` // "root" or "contract"
}

// JournalConfig selects where realized trades are journaled. An empty Type
// disables journaling.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// LoadFromFile loads configuration from a file, trying YAML then JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Accounting.Multiplier <= 0 {
		return fmt.Errorf("accounting.multiplier must be positive")
	}
	if c.Report.PageSize <= 0 {
		return fmt.Errorf("report.page_size must be positive")
	}
	if c.Report.BarWidth <= 0 {
		return fmt.Errorf("report.bar_width must be positive")
	}
	if c.Report.ChartWidth < 20 {
		return fmt.Errorf("report.chart_width must be at least 20")
	}
	if c.Report.GroupBy != "root" && c.Report.GroupBy != "contract" {
		return fmt.Errorf("report.group_by must be 'root' or 'contract'")
	}
	switch c.Journal.Type {
	case "":
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be '', 'csv' or 'sqlite'")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Accounting: AccountingConfig{Multiplier: 100},
		Report: ReportConfig{
			PageSize:   20,
			BarWidth:   32,
			ChartWidth: 80,
			GroupBy:    "root",
		},
		Journal: JournalConfig{DBPath: "./fillpnl.sqlite"},
		Log:     LogConfig{Level: "info"},
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvMultiplier = "FILLPNL_MULTIPLIER"
	EnvPageSize   = "FILLPNL_PAGE_SIZE"
	EnvLogLevel   = "FILLPNL_LOG_LEVEL"
	EnvJournalDB  = "FILLPNL_JOURNAL_DB"
)

// DefaultEnvFile is read by ApplyEnv when no path is given.
const DefaultEnvFile = ".env"

// ApplyEnv loads envPath, or DefaultEnvFile when it exists, and then
// overrides c from FILLPNL_* variables. Priority: ENV > .env > file.
func (c *Config) ApplyEnv(envPath string) error {
	if envPath == "" {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			envPath = DefaultEnvFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	if v, ok := lookup(EnvMultiplier); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMultiplier, err)
		}
		c.Accounting.Multiplier = f
	}
	if v, ok := lookup(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPageSize, err)
		}
		c.Report.PageSize = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvJournalDB); ok {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	return c.Validate()
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
