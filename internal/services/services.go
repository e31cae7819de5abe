package services

import (
	"time"

	dlqpublisher "bitbucket.org/Amartha/go-accounting-landing/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/idgenerator"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/publisher"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/retry"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/transformer"
)

type service struct {
	srv *Services
}

type Services struct {
	conf   config.Config
	tables config.MappingTables

	// sqlRepo and landingPub may be nil when their sink is disabled,
	// cacheRepo when no redis is configured.
	sqlRepo        repositories.SQLRepository
	cacheRepo      repositories.CacheRepository
	storageRepo    repositories.StorageRepository
	fileRepo       repositories.FileRepository
	masterDataRepo repositories.MasterDataRepository

	landingPub  publisher.Publisher
	dlq         dlqpublisher.Publisher
	idgenerator idgenerator.Generator
	retryer     retry.Retryer
	metrics     metrics.Metrics

	transformers transformer.MapTransformer
	now          func() time.Time

	common service

	Batch        *batch
	Payroll      *payroll
	Orchestrator *orchestrator
}

func New(
	conf config.Config,
	tables config.MappingTables,
	sqlRepo repositories.SQLRepository,
	cacheRepo repositories.CacheRepository,
	storageRepo repositories.StorageRepository,
	fileRepo repositories.FileRepository,
	masterDataRepo repositories.MasterDataRepository,
	landingPub publisher.Publisher,
	dlq dlqpublisher.Publisher,
	idgenerator idgenerator.Generator,
	retryer retry.Retryer,
	metrics metrics.Metrics,
	opts ...transformer.Option,
) *Services {
	srv := &Services{
		conf:           conf,
		tables:         tables,
		sqlRepo:        sqlRepo,
		cacheRepo:      cacheRepo,
		storageRepo:    storageRepo,
		fileRepo:       fileRepo,
		masterDataRepo: masterDataRepo,
		landingPub:     landingPub,
		dlq:            dlq,
		idgenerator:    idgenerator,
		retryer:        retryer,
		metrics:        metrics,
		transformers:   transformer.NewMapTransformer(conf.Landing, tables, masterDataRepo, opts...),
		now:            time.Now,
	}
	srv.common.srv = srv
	srv.Batch = (*batch)(&srv.common)
	srv.Payroll = (*payroll)(&srv.common)
	srv.Orchestrator = (*orchestrator)(&srv.common)

	return srv
}
