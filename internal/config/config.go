package config

import (
	"time"
)

type (
	Config struct {
		App                App           `json:"app"`
		Postgres           Postgres      `json:"postgres"`
		Redis              Redis         `json:"redis"`
		GcloudProjectID    string        `json:"gcloud_project_id"`
		NewRelicLicenseKey string        `json:"new_relic_license_key"`
		CloudStorageConfig CloudStorage  `json:"cloud_storage"`
		MasterData         MasterData    `json:"master_data"`
		MessageBroker      MessageBroker `json:"message_broker"`

		ExchangeRateService HTTPConfiguration        `json:"exchange_rate_service"`
		ExponentialBackoff  ExponentialBackOffConfig `json:"exponential_backoff"`

		Landing Landing `json:"landing"`
		Sinks   Sinks   `json:"sinks"`
		Mapping Mapping `json:"mapping"`
	}

	App struct {
		Env             string        `json:"env"`
		HTTPPort        int           `json:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name"`
		LogOption       string        `json:"log_option"`
		LogLevel        string        `json:"log_level"`
		// SecretKey guards the internal v1 api.
		SecretKey string `json:"secret_key"`
	}

	Postgres struct {
		Write Database `json:"write"`
		Read  Database `json:"read"`
	}

	Database struct {
		DbHost            string `json:"db_host"`
		DbPort            string `json:"db_port"`
		DbUser            string `json:"db_user"`
		DbPass            string `json:"db_pass"`
		DbName            string `json:"db_name"`
		DbSchema          string `json:"db_schema"`
		MaxOpenConnection int    `json:"maxOpenConnections"`
		MaxIdleConnection int    `json:"maxIdleConnections"`
		ConnMaxLifetime   int    `json:"connMaxLifetime"`
	}

	Redis struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
		Db       int    `json:"db"`
	}

	CloudStorage struct {
		BaseURL    string `json:"base_url"`
		BucketName string `json:"bucket_name"`
		// ErrorDataPrefix is where rejected records and error reports are written.
		ErrorDataPrefix string `json:"error_data_prefix"`
	}

	MasterData struct {
		BucketName      string        `json:"bucket_name"`
		FilePath        string        `json:"file_path"`
		RefreshInterval time.Duration `json:"refresh_interval"`
	}

	MessageBroker struct {
		Kafka KafkaConfig `json:"kafka"`
	}

	KafkaConfig struct {
		Brokers      []string `json:"brokers"`
		TopicLanding string   `json:"topic_landing"`
		// TopicDLQ receives undeliverable sink payloads. When empty they are
		// written under the error-data prefix of the default bucket.
		TopicDLQ string `json:"topic_dlq"`
	}

	HTTPConfiguration struct {
		Enabled       bool          `json:"enabled"`
		BaseURL       string        `json:"base_url"`
		SecretKey     string        `json:"secret_key"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time"`
		Timeout       time.Duration `json:"timeout"`
		CacheTTL      time.Duration `json:"cache_ttl"`
		// CacheBackend is "memory" (default) or "redis".
		CacheBackend string `json:"cache_backend"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
	}

	Landing struct {
		// LedgerID, LegalEntityID, BusinessUnit and CompanyCode are stamped on every record.
		LedgerID         string `json:"ledger_id"`
		LegalEntityID    string `json:"legal_entity_id"`
		BusinessUnit     string `json:"business_unit"`
		CompanyCode      string `json:"company_code"`
		ExchangeRateType string `json:"exchange_rate_type"`
		// FunctionalCurrency is the currency of accounted amounts.
		FunctionalCurrency string `json:"functional_currency"`

		// ThresholdComparator is "gt" (abort when errors exceed the threshold) or "gte".
		ThresholdComparator string        `json:"threshold_comparator"`
		Workers             int           `json:"workers"`
		BatchIDSuffix       bool          `json:"batch_id_suffix"`
		BatchLockTTL        time.Duration `json:"batch_lock_ttl"`
		OutputDir           string        `json:"output_dir"`

		Sales     SourceSystemConfig `json:"sales"`
		HR        HRConfig           `json:"hr"`
		Inventory InventoryConfig    `json:"inventory"`
	}

	SourceSystemConfig struct {
		ErrorThreshold int    `json:"error_threshold"`
		BatchSize      int    `json:"batch_size"`
		CreatedBy      string `json:"created_by"`
		// CreateTaxEntries adds a tax landing record after every taxed sales record.
		CreateTaxEntries bool `json:"create_tax_entries"`
	}

	HRConfig struct {
		SourceSystemConfig `json:",squash"`
		// PayrollMode is "fabricated", "file" or "inline".
		PayrollMode     string `json:"payroll_mode"`
		DefaultCurrency string `json:"default_currency"`
		TaxRegionCode   string `json:"tax_region_code"`
		// AllocationEnabled fans payroll components out by the employee's
		// allocation rule. Off, every component is one record of its home department.
		AllocationEnabled bool `json:"allocation_enabled"`
	}

	InventoryConfig struct {
		SourceSystemConfig `json:",squash"`
		MovementTypes []string `json:"movement_types"`
	}

	Sinks struct {
		SQLEnabled         bool `json:"sql_enabled"`
		KafkaEnabled       bool `json:"kafka_enabled"`
		ErrorReportEnabled bool `json:"error_report_enabled"`
		BatchLockEnabled   bool `json:"batch_lock_enabled"`
	}

	// Mapping carries optional overrides merged over DefaultMappingTables.
	Mapping struct {
		JournalCategories map[string]map[string]string         `json:"journal_categories"`
		Accounts          map[string]map[string]AccountVariant `json:"accounts"`
		HRAccounts        map[string]string                    `json:"hr_accounts"`
	}

	AccountVariant struct {
		Default string `json:"default"`
		Tax     string `json:"tax"`
	}
)
