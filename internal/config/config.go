// Package config loads the datalake command configuration.
//
// Values are resolved in viper's order: command line flags, DATALAKE_* environment variables,
// the optional YAML config file, then the defaults, which reproduce the proof-of-concept data lake (datalake_poc).
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/generator"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/postgresloader"
)

const envPrefix = "DATALAKE"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	OutputDir  string           `mapstructure:"output_dir"  yaml:"output_dir"`
	Seed       int64            `mapstructure:"seed"        yaml:"seed"`
	IDStrategy string           `mapstructure:"id_strategy" yaml:"id_strategy"` // "sequential" or "uuid"
	Counts     CountsConfig     `mapstructure:"counts"      yaml:"counts"`
	MarketData MarketDataConfig `mapstructure:"market_data" yaml:"market_data"`
	Logging    LoggingConfig    `mapstructure:"logging"     yaml:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"    yaml:"database"`
}

type CountsConfig struct {
	Clients      int `mapstructure:"clients"      yaml:"clients"`
	Products     int `mapstructure:"products"     yaml:"products"`
	Transactions int `mapstructure:"transactions" yaml:"transactions"`
	Interactions int `mapstructure:"interactions" yaml:"interactions"`
}

type MarketDataConfig struct {
	Enabled   bool   `mapstructure:"enabled"    yaml:"enabled"`
	Start     string `mapstructure:"start"      yaml:"start"` // 2006-01-02
	End       string `mapstructure:"end"        yaml:"end"`   // empty means today
	IndexName string `mapstructure:"index_name" yaml:"index_name"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

type DatabaseConfig struct {
	Driver    string `mapstructure:"driver"     yaml:"driver"` // "pgx", "sql" or "sqlx"
	DSN       string `mapstructure:"dsn"        yaml:"dsn"`
	BatchSize int    `mapstructure:"batch_size" yaml:"batch_size"`
	Truncate  bool   `mapstructure:"truncate"   yaml:"truncate"`
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"output-dir":        "output_dir",
	"seed":              "seed",
	"id-strategy":       "id_strategy",
	"clients":           "counts.clients",
	"products":          "counts.products",
	"transactions":      "counts.transactions",
	"interactions":      "counts.interactions",
	"market-data":       "market_data.enabled",
	"market-data-start": "market_data.start",
	"market-data-end":   "market_data.end",
	"index-name":        "market_data.index_name",
	"log-level":         "logging.level",
	"log-format":        "logging.format",
	"db-driver":         "database.driver",
	"dsn":               "database.dsn",
	"batch-size":        "database.batch_size",
	"truncate":          "database.truncate",
}

// Load resolves the configuration. configFile may be empty; flags may be nil.
// Only flags listed in FlagKeys and present in the flag set are bound.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}

			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	counts := generator.DefaultCounts()

	v.SetDefault("output_dir", "datalake_poc")
	v.SetDefault("seed", 0)
	v.SetDefault("id_strategy", string(generator.IDStrategySequential))

	v.SetDefault("counts.clients", counts.Clients)
	v.SetDefault("counts.products", counts.Products)
	v.SetDefault("counts.transactions", counts.Transactions)
	v.SetDefault("counts.interactions", counts.Interactions)

	v.SetDefault("market_data.enabled", true)
	v.SetDefault("market_data.start", "2020-01-01")
	v.SetDefault("market_data.end", "")
	v.SetDefault("market_data.index_name", "Ibovespa")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("database.driver", postgresloader.DriverPGX)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.batch_size", 1000)
	v.SetDefault("database.truncate", false)
}

// Validate checks every value the generate command depends on. Database settings are checked by ValidateDatabase.
func (c *Config) Validate() error {
	var errs []error

	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}

	if _, err := generator.ParseIDStrategy(c.IDStrategy); err != nil {
		errs = append(errs, err)
	}

	if err := c.GeneratorCounts().Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.MarketData.Enabled {
		if _, _, err := c.MarketDataRange(); err != nil {
			errs = append(errs, err)
		}

		if c.MarketData.IndexName == "" {
			errs = append(errs, errors.New("market_data.index_name must not be empty"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}

// ValidateDatabase checks the settings the load command depends on.
func (c *Config) ValidateDatabase() error {
	var errs []error

	if !slices.Contains(postgresloader.Drivers(), c.Database.Driver) {
		errs = append(errs, fmt.Errorf("%w: %q", postgresloader.ErrUnknownDriver, c.Database.Driver))
	}

	if c.Database.DSN == "" {
		errs = append(errs, postgresloader.ErrEmptyDSN)
	}

	if c.Database.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", postgresloader.ErrInvalidBatchSize, c.Database.BatchSize))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}

// GeneratorCounts returns the configured record counts.
func (c *Config) GeneratorCounts() generator.Counts {
	return generator.Counts{
		Clients:      c.Counts.Clients,
		Products:     c.Counts.Products,
		Transactions: c.Counts.Transactions,
		Interactions: c.Counts.Interactions,
	}
}

// MarketDataRange parses the configured market data range. A zero end means today.
func (c *Config) MarketDataRange() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(datalake.DateLayout, c.MarketData.Start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("market_data.start: %w", err)
	}

	if c.MarketData.End == "" {
		return start, time.Time{}, nil
	}

	end, err := time.ParseInLocation(datalake.DateLayout, c.MarketData.End, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("market_data.end: %w", err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: market data %s..%s",
			datalake.ErrInvalidRange, c.MarketData.Start, c.MarketData.End)
	}

	return start, end, nil
}

// GeneratorOptions translates the configuration into generator options.
func (c *Config) GeneratorOptions() ([]generator.Option, error) {
	strategy, err := generator.ParseIDStrategy(c.IDStrategy)
	if err != nil {
		return nil, err
	}

	options := []generator.Option{
		generator.WithSeed(c.Seed),
		generator.WithIDStrategy(strategy),
	}

	if !c.MarketData.Enabled {
		return append(options, generator.WithoutMarketData()), nil
	}

	start, end, err := c.MarketDataRange()
	if err != nil {
		return nil, err
	}

	return append(options, generator.WithMarketData(start, end, c.MarketData.IndexName)), nil
}
