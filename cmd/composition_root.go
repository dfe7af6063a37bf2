package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatchsim/internal/adapters/out/kafka"
	"dispatchsim/internal/adapters/out/postgres"
	"dispatchsim/internal/adapters/out/s3archive"
	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	metrics    *observability.SimulationCollector

	producer *kafka.SimulationCompletedProducer
	archiver *s3archive.SnapshotArchiver
}

// NewCompositionRoot wires the optional Kafka publisher and S3 archiver from
// cfg. reg receives the simulation metrics; nil uses the default registry.
func NewCompositionRoot(
	ctx context.Context,
	cfg Config,
	gormDB *gorm.DB,
	logger *slog.Logger,
	reg prometheus.Registerer,
) (*CompositionRoot, error) {
	metrics, err := observability.NewSimulationCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		metrics:    metrics,
	}

	if cfg.KafkaEnabled {
		producer, err := kafka.NewSimulationCompletedProducer(cfg.KafkaBrokers(), cfg.KafkaSimulationCompletedTopic)
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		root.producer = producer
		logger.InfoContext(ctx, "publishing simulation events", "topic", cfg.KafkaSimulationCompletedTopic)
	}

	if cfg.S3ArchiveEnabled {
		archiver, err := s3archive.NewSnapshotArchiver(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			_ = root.Close()
			return nil, fmt.Errorf("create s3 archiver: %w", err)
		}
		root.archiver = archiver
		logger.InfoContext(ctx, "archiving simulation snapshots", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
	}

	return root, nil
}

// Close releases the Kafka producer.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.producer != nil {
		errs = append(errs, c.producer.Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) Metrics() *observability.SimulationCollector {
	return c.metrics
}

func (c *CompositionRoot) CreateRunSimulationCommandHandler() (*commands.RunSimulationCommandHandler, error) {
	var f commands.SimulationUoWFactory = FuncSimulationUoWFactory(func() commands.SimulationUoW {
		return c.uowFactory.Create()
	})

	opts := []commands.RunSimulationOption{
		commands.WithLogger(c.logger),
		commands.WithRecorder(c.metrics),
	}
	if c.producer != nil {
		opts = append(opts, commands.WithEventPublisher(c.producer))
	}
	if c.archiver != nil {
		opts = append(opts, commands.WithSnapshotArchiver(c.archiver))
	}

	return commands.NewRunSimulationCommandHandler(f, services.UniformNoise{}, opts...)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRouteCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSimulationHistoryQueryHandler() queries.GetSimulationHistoryQueryHandler {
	return queries.NewGetSimulationHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSimulationRunQueryHandler() queries.GetSimulationRunQueryHandler {
	return queries.NewGetSimulationRunQueryHandler(c.uowFactory.Create().SimulationRunRepository())
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSimulationUoWFactory func() commands.SimulationUoW

func (f FuncSimulationUoWFactory) Create() commands.SimulationUoW {
	return f()
}
