package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"golang.org/x/exp/slices"

	genericCache "bitbucket.org/Amartha/go-accounting-landing/internal/common/cache"
	dlqpublisher "bitbucket.org/Amartha/go-accounting-landing/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/fxrate"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/graceful"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/idgenerator"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	cMetrics "bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/publisher"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/retry"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services"

	"cloud.google.com/go/compute/metadata"
	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

const (
	cacheBackendRedis   = "redis"
	saramaFlushInterval = 10 * time.Second
)

type Setup struct {
	Config           config.Config
	NewRelic         *newrelic.Application
	WriteDB          *sql.DB
	ReadDB           *sql.DB
	Cache            *redis.Client
	RepoCache        repositories.CacheRepository
	RepoCloudStorage repositories.StorageRepository
	RepoFile         repositories.FileRepository
	Service          *services.Services
	PublisherClient  *PublisherClient
	Metrics          cMetrics.Metrics
}

// Init wires one process. Postgres, redis, kafka and the master-data bucket
// are optional and only connected when configured.
func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load(config.EnvPrefix,
		config.WithConfigFileName("config"),
		config.WithConfigFileSearchPaths("/config", ".", "./config"),
	)
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	logLevel := xlog.DebugLogLevel()
	excludedDebugLevelOnEnvs := []config.Environment{
		config.DEV_ENV,
		config.UAT_ENV,
		config.PROD_ENV,
	}

	if slices.Contains(excludedDebugLevelOnEnvs, config.StringToEnvironment(cfg.App.Env)) {
		logLevel = xlog.InfoLogLevel()
	}

	err = xlog.Init(cfg.App.Name,
		xlog.WithLogToOption(cfg.App.LogOption),
		xlog.WithLogEnvOption(cfg.App.Env),
		xlog.WithCaller(true),
		xlog.AddCallerSkip(2),
		logLevel)
	if err != nil {
		return
	}

	stopper = append(stopper, func(ctx context.Context) error {
		xlog.Sync()
		return nil
	})

	if cfg.GcloudProjectID == "" && metadata.OnGCE() {
		cfg.GcloudProjectID, _ = metadata.ProjectIDWithContext(ctx)
	}
	if cfg.GcloudProjectID == "" {
		xlog.Info(ctx, "can not determine google cloud project, for local use set the gcloud_project_id in config yaml")
	}

	newRelic := setupNR(ctx, cfg)

	mtc := cMetrics.New()

	tables, err := config.DefaultMappingTables().Merge(cfg.Mapping)
	if err != nil {
		err = fmt.Errorf("invalid mapping override: %w", err)
		return
	}

	var (
		writeDB, readDB *sql.DB
		sqlRepo         repositories.SQLRepository
	)
	if cfg.Sinks.SQLEnabled {
		writeDB, readDB, err = setupPostgres(cfg)
		if err != nil {
			err = fmt.Errorf("failed connect to database: %w", err)
			return
		}
		stopper = append(stopper, func(ctx context.Context) error {
			var errs error

			if err := writeDB.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("failed to close writeDB: %w", err))
			}

			if err := readDB.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("failed to close readDB: %w", err))
			}

			return errs
		})

		err = mtc.RegisterDB(writeDB, cMetrics.FlattenName(cfg.App.Name+"-"+command+"-write"), cfg.Postgres.Write.DbName)
		if err != nil {
			err = fmt.Errorf("failed register DB stat prometheus: %w", err)
			return
		}
		err = mtc.RegisterDB(readDB, cMetrics.FlattenName(cfg.App.Name+"-"+command+"-read"), cfg.Postgres.Read.DbName)
		if err != nil {
			err = fmt.Errorf("failed register DB stat prometheus: %w", err)
			return
		}

		sqlRepo = repositories.NewSQLRepository(writeDB, readDB, cfg)
	}

	var (
		cache     *redis.Client
		cacheRepo repositories.CacheRepository
	)
	if cfg.Redis.Host != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Db,
		})
		_, err = cache.Ping(ctx).Result()
		if err != nil {
			err = fmt.Errorf("failed connect to redis: %w", err)
			return
		}
		stopper = append(stopper, func(ctx context.Context) error { return cache.Close() })

		err = mtc.RegisterRedis(cache, cfg.App.Name, command)
		if err != nil {
			err = fmt.Errorf("failed register redis prometheus: %w", err)
			return
		}

		cacheRepo = repositories.NewCacheRepository(cache)
	}

	masterDataRepo, err := setupMasterData(ctx, cfg, tables, cache, mtc, &stopper)
	if err != nil {
		return
	}

	storageRepo := repositories.NewStorageRepository(cfg.CloudStorageConfig)
	stopper = append(stopper, func(ctx context.Context) error { return storageRepo.Close() })

	publisherClient, err := setupPublishers(cfg, storageRepo, mtc, &stopper)
	if err != nil {
		return
	}

	fileRepo := repositories.NewFileRepository()

	var idOpts []idgenerator.Option
	if cfg.Landing.BatchIDSuffix {
		idOpts = append(idOpts, idgenerator.WithRandomSuffix())
	}

	srv := services.New(
		cfg,
		tables,
		sqlRepo,
		cacheRepo,
		storageRepo,
		fileRepo,
		masterDataRepo,
		publisherClient.Landing,
		publisherClient.DLQ,
		idgenerator.New(idOpts...),
		retry.NewExponentialBackOff(cfg.ExponentialBackoff),
		mtc,
	)

	return &Setup{
		Config:           cfg,
		NewRelic:         newRelic,
		WriteDB:          writeDB,
		ReadDB:           readDB,
		Cache:            cache,
		RepoCache:        cacheRepo,
		RepoCloudStorage: storageRepo,
		RepoFile:         fileRepo,
		Service:          srv,
		PublisherClient:  publisherClient,
		Metrics:          mtc,
	}, stopper, nil
}

// setupMasterData layers the optional exchange-rate service and master-data
// bucket over the static mapping tables.
func setupMasterData(
	ctx context.Context,
	cfg config.Config,
	tables config.MappingTables,
	cache *redis.Client,
	mtc cMetrics.Metrics,
	stopper *[]graceful.ProcessStopper,
) (repositories.MasterDataRepository, error) {
	masterDataRepo := repositories.NewStaticMasterDataRepository(tables)

	if cfg.MasterData.BucketName != "" {
		gcsRepo, err := repositories.NewGCSMasterDataRepository(cfg.MasterData, masterDataRepo)
		if err != nil {
			return nil, fmt.Errorf("failed connect to gcs master data: %w", err)
		}

		refreshCtx, cancel := context.WithCancel(ctx)
		*stopper = append(*stopper, func(ctx context.Context) error {
			cancel()
			return nil
		})
		gcsRepo.RefreshDataPeriodically(refreshCtx, cfg.MasterData.RefreshInterval)
		masterDataRepo = gcsRepo
	}

	if !cfg.ExchangeRateService.Enabled {
		return masterDataRepo, nil
	}

	var rateCache genericCache.Client[string]
	if cfg.ExchangeRateService.CacheBackend == cacheBackendRedis && cache != nil {
		rateCache = genericCache.NewRedisClient[string](cache, cfg.App.Name)
	} else {
		inMemory := genericCache.NewInMemoryClient[string]()
		*stopper = append(*stopper, func(ctx context.Context) error {
			inMemory.Close()
			return nil
		})
		rateCache = inMemory
	}

	client := fxrate.New(cfg.ExchangeRateService, mtc, rateCache)
	return repositories.NewRateServiceMasterDataRepository(masterDataRepo, client), nil
}

// setupPublishers connects kafka when the landing sink or the kafka DLQ needs it.
// Without a DLQ topic failed payloads are written to the error-data prefix.
func setupPublishers(
	cfg config.Config,
	storageRepo repositories.StorageRepository,
	mtc cMetrics.Metrics,
	stopper *[]graceful.ProcessStopper,
) (*PublisherClient, error) {
	kafkaCfg := cfg.MessageBroker.Kafka
	client := &PublisherClient{
		DLQ: dlqpublisher.NewStorage(storageRepo),
	}

	if !cfg.Sinks.KafkaEnabled && kafkaCfg.TopicDLQ == "" {
		return client, nil
	}

	producer, err := publisher.NewKafkaSyncProducer(
		kafkaCfg.Brokers,
		publisher.WithCustomHasher(fnv.New32a),
		publisher.WithMetricRegistry(mtc.SaramaRegistry(cMetrics.FlattenName(cfg.App.Name+"_producer"), saramaFlushInterval)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create client kafka sync producer: %w", err)
	}
	*stopper = append(*stopper, func(ctx context.Context) error { return producer.Close() })

	if cfg.Sinks.KafkaEnabled {
		client.Landing = publisher.NewPublisher(producer, kafkaCfg.TopicLanding, mtc.GetPublisherPrometheus())
	}
	if kafkaCfg.TopicDLQ != "" {
		client.DLQ = dlqpublisher.New(producer, kafkaCfg.TopicDLQ, mtc.GetPublisherPrometheus())
	}

	return client, nil
}

func setupPostgres(conf config.Config) (*sql.DB, *sql.DB, error) {
	writeDB, err := initDB(conf.Postgres.Write)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init write DB: %w", err)
	}

	readDB, err := initDB(conf.Postgres.Read)
	if err != nil {
		writeDB.Close()
		return nil, nil, fmt.Errorf("failed to init read DB: %w", err)
	}

	return writeDB, readDB, nil
}

func initDB(pgConf config.Database) (*sql.DB, error) {
	const (
		DefaultMaxOpen     = 10
		DefaultMaxIdle     = 10
		DefaultMaxLifetime = 3 // minutes
	)

	dsName := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		pgConf.DbHost, pgConf.DbPort, pgConf.DbUser, pgConf.DbPass, pgConf.DbName, pgConf.DbSchema,
	)

	db, err := sql.Open("nrpgx", dsName)
	if err != nil {
		return nil, err
	}

	maxOpen, maxIdle, maxLifetime := DefaultMaxOpen, DefaultMaxIdle, DefaultMaxLifetime
	if pgConf.MaxOpenConnection > 0 {
		maxOpen = pgConf.MaxOpenConnection
	}
	if pgConf.MaxIdleConnection > 0 {
		maxIdle = pgConf.MaxIdleConnection
	}
	if pgConf.ConnMaxLifetime > 0 {
		maxLifetime = pgConf.ConnMaxLifetime
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Duration(maxLifetime) * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if config.StringToEnvironment(cfg.App.Env) != config.PROD_ENV || cfg.NewRelicLicenseKey == "" {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		func(config *newrelic.Config) {
			config.Logger = nrzap.Transform(xlog.Logger())
		},
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		xlog.Errorf(ctx, "setupNR.NewApplication - %v", err)
		return nil
	}
	if err = app.WaitForConnection(15 * time.Second); err != nil {
		xlog.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
	}
	return app
}
