//go:build wireinject
// +build wireinject

package di

import (
	"JaxSpot/pkg/config"
	"JaxSpot/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideMetricsSink,

		// Infrastructure clients
		ProvideSQLiteStore,
		ProvideRedisCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideSessionStore,
		ProvideAnalyticsSink,
		ProvideEventPublisher,

		// Queues
		ProvideQueuePublisher,
		ProvideQueueConsumer,
		ProvideUsageLogJob,

		// Use cases
		ProvideEventProcessor,
		ProvideEventPipeline,
		ProvideFeedService,
		ProvideAccessService,
		ProvideAccuracyService,
		ProvideAuthService,
		ProvideUserService,
		ProvidePickService,
		ProvideAppService,
		ProvideNotifier,
		ProvideTransitionsHandler,

		// Scheduling and transport
		ProvideScheduler,
		ProvideAPIHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
