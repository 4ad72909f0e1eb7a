package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		GateBaseURL    string `yaml:"gate_base_url"`
		TushareBaseURL string `yaml:"tushare_base_url"`
		TushareToken   string `yaml:"tushare_token"`
	} `yaml:"data_source"`
	Symbols      []string `yaml:"symbols"`
	Interval     string   `yaml:"interval"`
	SampleBudget int      `yaml:"sample_budget"`
	Schedule     struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	// FundingDefaults overrides the built-in per-symbol funding-rate
	// fallback table.
	FundingDefaults map[string]float64 `yaml:"funding_defaults"`
	Proxy           string             `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GATE_BASE_URL"); v != "" {
		cfg.DataSource.GateBaseURL = v
	}
	if v := os.Getenv("TUSHARE_BASE_URL"); v != "" {
		cfg.DataSource.TushareBaseURL = v
	}
	if v := os.Getenv("TUSHARE_TOKEN"); v != "" {
		cfg.DataSource.TushareToken = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("INTERVAL"); v != "" {
		cfg.Interval = v
	}
	if v := os.Getenv("SAMPLE_BUDGET"); v != "" {
		var budget int
		if _, err := fmt.Sscanf(v, "%d", &budget); err == nil {
			cfg.SampleBudget = budget
		}
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		cfg.Schedule.ReportCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = []string{"BTCUSDT"}
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	if cfg.SampleBudget == 0 {
		cfg.SampleBudget = 1000
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 0 8 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/quant_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	if c.SampleBudget < 0 {
		return fmt.Errorf("sample_budget must not be negative")
	}
	for symbol, rate := range c.FundingDefaults {
		if rate < -1 || rate > 1 {
			return fmt.Errorf("funding_defaults.%s out of range: %f", symbol, rate)
		}
	}
	return nil
}

func splitSymbols(v string) []string {
	parts := strings.Split(v, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
