package cmd

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "github.com/Aliaga23/SIG-Backend/internal/adapters/in/http"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/geo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres"
	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/queries"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
	"github.com/Aliaga23/SIG-Backend/internal/jobs"
	"github.com/Aliaga23/SIG-Backend/internal/metrics"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	estimator     services.RouteEstimator
	registry      *prometheus.Registry
	engineMetrics *metrics.Metrics
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		estimator:     services.NewRouteEstimator(buildExternalRouter(config, logger), logger),
		registry:      registry,
		engineMetrics: metrics.New(registry),
		logger:        logger,
	}
}

// buildExternalRouter assembles the optional routing chain. Without an API
// key the estimator runs on the geodesic fallback alone; with Redis
// configured, leg estimates are cached in front of the Google client.
func buildExternalRouter(config Config, logger *slog.Logger) ports.ExternalRouter {
	if config.GoogleMapsAPIKey == "" {
		return nil
	}

	router, err := geo.NewGoogleRouter(config.GoogleMapsAPIKey, config.GoogleMapsBaseURL, nil)
	if err != nil {
		logger.Warn("external router disabled", "error", err)
		return nil
	}

	if config.RedisAddr == "" {
		return router
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	return geo.NewCachedRouter(router, client, geo.DefaultLegCacheTTL, logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateProposeAssignmentsCommandHandler() commands.ProposeAssignmentsCommandHandler {
	return commands.NewProposeAssignmentsCommandHandler(c.engineUoWFactory(), c.estimator)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.engineUoWFactory(), c.estimator, c.logger)
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.engineUoWFactory())
}

func (c *CompositionRoot) CreateExpireAssignmentsCommandHandler() commands.ExpireAssignmentsCommandHandler {
	return commands.NewExpireAssignmentsCommandHandler(c.engineUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCleanupStaleAssignmentsCommandHandler() commands.CleanupStaleAssignmentsCommandHandler {
	return commands.NewCleanupStaleAssignmentsCommandHandler(c.engineUoWFactory())
}

func (c *CompositionRoot) CreateCompleteStopCommandHandler() commands.CompleteStopCommandHandler {
	return commands.NewCompleteStopCommandHandler(c.engineUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetCourierAssignmentsQueryHandler() queries.GetCourierAssignmentsQueryHandler {
	return queries.NewGetCourierAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingAssignmentsQueryHandler() queries.GetPendingAssignmentsQueryHandler {
	return queries.NewGetPendingAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateProposeAssignmentsCommandHandler(),
		c.CreateAcceptAssignmentCommandHandler(),
		c.CreateRejectAssignmentCommandHandler(),
		c.CreateExpireAssignmentsCommandHandler(),
		c.CreateCleanupStaleAssignmentsCommandHandler(),
		c.CreateCompleteStopCommandHandler(),
		c.CreateGetCourierAssignmentsQueryHandler(),
		c.CreateGetPendingAssignmentsQueryHandler(),
		c.engineMetrics,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireAssignmentsCommandHandler(),
		c.CreateProposeAssignmentsCommandHandler(),
		c.engineMetrics,
		c.logger,
	)
}

func (c *CompositionRoot) MetricsGatherer() prometheus.Gatherer {
	return c.registry
}

func (c *CompositionRoot) engineUoWFactory() commands.EngineUoWFactory {
	return FuncEngineUoWFactory(func() commands.EngineUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncEngineUoWFactory func() commands.EngineUoW

func (f FuncEngineUoWFactory) Create() commands.EngineUoW {
	return f()
}
