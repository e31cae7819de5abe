package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const EnvPrefix = "GO_ACCOUNTING_LANDING"

type loaderOptions struct {
	fileName    string
	searchPaths []string
}

type LoaderOption func(*loaderOptions)

func WithConfigFileName(name string) LoaderOption {
	return func(o *loaderOptions) { o.fileName = name }
}

func WithConfigFileSearchPaths(paths ...string) LoaderOption {
	return func(o *loaderOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// Load reads the config file (if any), overlays environment variables
// prefixed with envPrefix and decodes the result into a Config.
func Load(envPrefix string, opts ...LoaderOption) (Config, error) {
	o := &loaderOptions{fileName: "config"}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(o.fileName)
	for _, p := range o.searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "json"
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-accounting-landing")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http_port", 8080)
	v.SetDefault("app.http_timeout", 30*time.Second)
	v.SetDefault("app.graceful_timeout", 10*time.Second)
	v.SetDefault("app.log_option", "json")

	v.SetDefault("cloud_storage.error_data_prefix", "error-data")
	v.SetDefault("master_data.refresh_interval", time.Minute)

	v.SetDefault("exchange_rate_service.timeout", 5*time.Second)
	v.SetDefault("exchange_rate_service.cache_ttl", time.Hour)
	v.SetDefault("exchange_rate_service.cache_backend", "memory")

	v.SetDefault("exponential_backoff.max_retries", 3)
	v.SetDefault("exponential_backoff.max_backoff_time", 2*time.Second)
	v.SetDefault("exponential_backoff.backoff_multiplier", 2.0)

	v.SetDefault("landing.ledger_id", "GL001")
	v.SetDefault("landing.legal_entity_id", "COMP001")
	v.SetDefault("landing.business_unit", "BU001")
	v.SetDefault("landing.company_code", "COMP001")
	v.SetDefault("landing.exchange_rate_type", "Corporate")
	v.SetDefault("landing.functional_currency", "JPY")
	v.SetDefault("landing.threshold_comparator", ThresholdComparatorGreaterThan)
	v.SetDefault("landing.workers", 4)
	v.SetDefault("landing.batch_lock_ttl", time.Hour)
	v.SetDefault("landing.output_dir", "output")

	v.SetDefault("landing.sales.error_threshold", 100)
	v.SetDefault("landing.sales.batch_size", 10000)
	v.SetDefault("landing.sales.created_by", "ETL_SALES")

	v.SetDefault("landing.hr.error_threshold", 50)
	v.SetDefault("landing.hr.batch_size", 5000)
	v.SetDefault("landing.hr.created_by", "ETL_HR")
	v.SetDefault("landing.hr.payroll_mode", PayrollModeFabricated)
	v.SetDefault("landing.hr.default_currency", "JPY")
	v.SetDefault("landing.hr.tax_region_code", "JP")
	v.SetDefault("landing.hr.allocation_enabled", false)

	v.SetDefault("landing.inventory.error_threshold", 100)
	v.SetDefault("landing.inventory.batch_size", 15000)
	v.SetDefault("landing.inventory.created_by", "ETL_INV")
}
