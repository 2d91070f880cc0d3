// Package container wires configuration into a ready work-order engine. It is
// shared by the HTTP server and the CLI.
package container

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"adas_workorders/internal/adapter/persistence/migrations"
	"adas_workorders/internal/adapter/persistence/repository"
	"adas_workorders/internal/config"
	"adas_workorders/internal/infrastructure/database"
	"adas_workorders/internal/infrastructure/documents"
	"adas_workorders/internal/infrastructure/guard"
	"adas_workorders/internal/infrastructure/metrics"
	"adas_workorders/internal/usecase"
	"adas_workorders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.WorkflowMetrics
	Repo    interfaces.IWorkOrderRepository
	UseCase *usecase.WorkOrderUseCase

	// SQL is set for the relational stores so the CLI can run migrations.
	SQL     *sql.DB
	Dialect string

	closers []func()
}

// Build connects the configured store and assembles the engine.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Metrics: metrics.NewWorkflowMetrics()}

	var shops interfaces.IShopDirectory
	var techs interfaces.ITechnicianDirectory

	switch cfg.Store {
	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, logger)
		if err != nil {
			return nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		c.Repo = repository.NewWorkOrderDynamoRepository(ddb)
		dir := repository.NewDirectoryDynamoRepository(ddb)
		shops, techs = dir, dir
	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = db.Close() })
		c.SQL, c.Dialect = db, migrations.DialectSQLite
		repo := repository.NewWorkOrderSQLiteRepository(db)
		c.Repo, shops, techs = repo, repo, repo
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		sqlDB := database.SQLFromPool(pool)
		c.closers = append(c.closers, func() { _ = sqlDB.Close(); pool.Close() })
		c.SQL, c.Dialect = sqlDB, migrations.DialectPostgres
		repo := repository.NewWorkOrderPostgresRepository(pool)
		c.Repo, shops, techs = repo, repo, repo
	case config.StoreMemory:
		c.Repo = repository.NewWorkOrderMemoryRepository()
		shops, techs = repository.StaticDirectory{}, repository.StaticDirectory{}
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	var requestGuard interfaces.IRequestGuard = guard.NewMemoryGuard()
	rdb, err := database.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		requestGuard = guard.NewRedisGuard(rdb)
	}

	var s3Client documents.S3API
	if !cfg.DocumentFetchMock {
		client, err := database.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			logger.Warn("[container][documents] s3 client unavailable; s3:// references will be skipped", zap.Error(err))
		} else {
			s3Client = client
		}
	}
	fetcher := documents.NewFetcher(documents.Config{
		Timeout:  cfg.DocumentFetchTimeout,
		MaxBytes: cfg.DocumentFetchMaxBytes,
		Mock:     cfg.DocumentFetchMock,
	}, &http.Client{}, s3Client, logger)

	assigner := usecase.NewAssignmentResolver(shops, techs, cfg.DefaultTechnician, logger)
	c.UseCase = usecase.NewWorkOrderUseCase(c.Repo, assigner, fetcher, requestGuard,
		usecase.WithLogger(logger),
		usecase.WithMetrics(c.Metrics),
		usecase.WithGuardTTL(cfg.GuardTTL),
	)
	logger.Info("[container][bootstrap] engine ready", zap.String("store", cfg.Store), zap.Bool("redis_guard", rdb != nil))
	return c, nil
}

// Migrate applies the embedded schema for relational stores; other stores are a no-op.
func (c *Container) Migrate(ctx context.Context) error {
	if c.SQL == nil {
		return nil
	}
	return migrations.Up(ctx, c.SQL, c.Dialect)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

var _ documents.S3API = (*s3.Client)(nil)
