package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"JaxSpot/internal/domain/repository"
	"JaxSpot/internal/handler/api"
	"JaxSpot/internal/middleware"
	"JaxSpot/internal/notifier"
	irepo "JaxSpot/internal/repository"
	"JaxSpot/internal/scheduler"
	"JaxSpot/internal/service/ratelimit"
	"JaxSpot/internal/usecase"
	pkgcache "JaxSpot/pkg/cache"
	pkgch "JaxSpot/pkg/clickhouse"
	"JaxSpot/pkg/config"
	"JaxSpot/pkg/kafka"
	"JaxSpot/pkg/logger"
	"JaxSpot/pkg/metrics"
	"JaxSpot/pkg/queue"
	"JaxSpot/pkg/server"
)

const (
	transitionsTable = "stage_transitions"
	usageTable       = "app_usage"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	return logger.New(lc)
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideMetricsSink exposes the recorder through the domain interface.
func ProvideMetricsSink(rec *metrics.Recorder) repository.Metrics {
	return rec
}

// ProvideSQLiteStore opens the relational store and seeds the app catalog.
func ProvideSQLiteStore(cfg *config.Config) (*irepo.SQLiteStore, error) {
	store, err := irepo.NewSQLiteStore(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.SeedApps(ctx, usecase.SeedApps()); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed apps: %w", err)
	}
	return store, nil
}

// ProvideRedisCache connects to Redis using the shared cache client.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr %q: %w", cfg.Redis.Addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port %q: %w", portStr, err)
	}

	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
}

// ProvideSessionStore backs sessions with Redis.
func ProvideSessionStore(rc *pkgcache.RedisCache) repository.SessionStore {
	return irepo.NewRedisSessionStore(rc.Client())
}

// ProvideQueuePublisher creates the producer side of the usage queue.
func ProvideQueuePublisher(lgr *logger.Logger, rc *pkgcache.RedisCache, cfg *config.Config) queue.QueueService {
	var opts []queue.RedisQueueOption
	if cfg.Queue.Key != "" {
		opts = append(opts, queue.WithKeyPrefix(cfg.Queue.Key))
	}
	return queue.NewRedisPublisher(lgr, rc.Client(), opts...)
}

// ProvideQueueConsumer creates the worker side with the usage log job registered.
func ProvideQueueConsumer(lgr *logger.Logger, cfg *config.Config, rc *pkgcache.RedisCache, job *usecase.UsageLogJob) *queue.RedisQueue {
	qc := &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: 3,
		RetryDelay: 5 * time.Second,
	}
	var opts []queue.RedisQueueOption
	if cfg.Queue.Key != "" {
		opts = append(opts, queue.WithKeyPrefix(cfg.Queue.Key))
	}
	return queue.NewRedisConsumer(lgr, qc, rc.Client(), []queue.Job{job}, opts...)
}

// ProvideClickHouseClient creates the ClickHouse client and ensures the schema.
// Returns nil when analytics storage is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout.D(), cfg.ClickHouse.ReadTimeout.D(), cfg.ClickHouse.WriteTimeout.D()),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime.D()),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, irepo.SchemaStatements(transitionsTable, usageTable)); err != nil {
		client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideAnalyticsSink picks the analytics backend for the ClickHouse client.
func ProvideAnalyticsSink(client *pkgch.Client) repository.AnalyticsSink {
	if client == nil {
		return irepo.NewNoopAnalytics()
	}
	return irepo.NewClickHouseAnalytics(client.DB(), transitionsTable, usageTable)
}

// ProvideKafkaProducer creates the transition bus producer.
func ProvideKafkaProducer(cfg *config.Config) (*kafka.Producer, error) {
	return kafka.NewProducer(
		kafka.WithBrokers(cfg.Kafka.Brokers),
		kafka.WithCompression(cfg.Kafka.Compression),
		kafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		kafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		kafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		kafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		kafka.WithBatchTimeout(cfg.Kafka.Producer.Linger.D()),
		kafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout.D(), cfg.Kafka.Producer.ReadTimeout.D()),
		kafka.WithAsync(cfg.Kafka.Producer.Async),
		kafka.WithHashByKey(true),
	)
}

// ProvideKafkaConsumer creates the transition bus consumer group.
func ProvideKafkaConsumer(lgr *logger.Logger, cfg *config.Config) (*kafka.Consumer, error) {
	c, err := kafka.NewConsumer(lgr,
		kafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		kafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		kafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		kafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		kafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin.D(), cfg.Kafka.Consumer.BackoffMax.D()),
		kafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		kafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	c.WithConsumerHook(kafka.NewLoggingHook(lgr))
	return c, nil
}

// ProvideEventPublisher keys transition events by symbol on the configured topic.
func ProvideEventPublisher(producer *kafka.Producer, cfg *config.Config) repository.EventPublisher {
	return irepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
}

// ProvideEventProcessor builds the transition event processor.
func ProvideEventProcessor(pub repository.EventPublisher, rec repository.Metrics) *usecase.EventProcessor {
	return usecase.NewEventProcessor(pub, rec)
}

// ProvideEventPipeline puts validation and throttling in front of the processor.
func ProvideEventPipeline(proc *usecase.EventProcessor, rec repository.Metrics) *middleware.EventPipeline {
	return middleware.NewEventPipeline(proc, rec)
}

// ProvideFeedService seeds the board and wires ticks into the pipeline.
func ProvideFeedService(lgr *logger.Logger, rec repository.Metrics, pipeline *middleware.EventPipeline, cfg *config.Config) *usecase.FeedService {
	return usecase.NewFeedService(lgr, rec, pipeline, usecase.SeedInstruments(),
		usecase.WithMovedClearTTL(cfg.MovedClearTTL()),
	)
}

// ProvideAccessService builds the tier gate.
func ProvideAccessService() *usecase.AccessService {
	return usecase.NewAccessService()
}

// ProvideAccuracyService builds the pick statistics aggregator. The summary
// sits behind a layered cache so polling clients hit memory, while the Redis
// layer keeps replicas consistent after an Invalidate.
func ProvideAccuracyService(store *irepo.SQLiteStore, rc *pkgcache.RedisCache, rec repository.Metrics, cfg *config.Config) *usecase.AccuracyService {
	layered := pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(64))
	return usecase.NewAccuracyService(store.Picks(), layered, cfg.Accuracy.CacheTTL.D(), rec)
}

// ProvideAuthService builds registration, login and session handling.
func ProvideAuthService(store *irepo.SQLiteStore, sessions repository.SessionStore, rec repository.Metrics, lgr *logger.Logger, cfg *config.Config) *usecase.AuthService {
	var opts []usecase.AuthOption
	if cfg.Auth.LoginBurst > 0 && cfg.Auth.LoginInterval.D() > 0 {
		opts = append(opts, usecase.WithLoginLimit(cfg.Auth.LoginBurst, 1/cfg.Auth.LoginInterval.D().Seconds()))
	}
	return usecase.NewAuthService(store.Users(), sessions, ratelimit.New(), rec, lgr, cfg.Auth.Secret, opts...)
}

// ProvideUserService builds profile and preference updates.
func ProvideUserService(store *irepo.SQLiteStore) *usecase.UserService {
	return usecase.NewUserService(store.Users())
}

// ProvidePickService builds pick lifecycle handling.
func ProvidePickService(store *irepo.SQLiteStore, accuracy *usecase.AccuracyService, rec repository.Metrics, lgr *logger.Logger) *usecase.PickService {
	return usecase.NewPickService(store.Picks(), accuracy, rec, lgr)
}

// ProvideAppService builds the platform app catalog with usage logging.
func ProvideAppService(store *irepo.SQLiteStore, access *usecase.AccessService, pub queue.QueueService, rec repository.Metrics, lgr *logger.Logger) *usecase.AppService {
	return usecase.NewAppService(store.Apps(), access, pub, rec, lgr)
}

// ProvideUsageLogJob builds the queue worker that flushes usage events.
func ProvideUsageLogJob(sink repository.AnalyticsSink, rec repository.Metrics, lgr *logger.Logger) *usecase.UsageLogJob {
	return usecase.NewUsageLogJob(sink, rec, lgr)
}

// ProvideNotifier builds the in-process alert ring.
func ProvideNotifier(lgr *logger.Logger) *notifier.Notifier {
	return notifier.New(lgr)
}

// ProvideTransitionsHandler consumes transition events into analytics and alerts.
func ProvideTransitionsHandler(cfg *config.Config, sink repository.AnalyticsSink, n *notifier.Notifier, rec repository.Metrics) kafka.MessageHandler {
	return usecase.NewTransitionsHandler(cfg.Kafka.Topic, sink, n, rec)
}

// ProvideScheduler drives the feed tick and cache refreshes on one cron.
func ProvideScheduler(feed *usecase.FeedService, accuracy *usecase.AccuracyService, lgr *logger.Logger) *scheduler.Scheduler {
	return scheduler.New(context.Background(), feed, accuracy, lgr)
}

// ProvideAPIHandler assembles the HTTP surface.
func ProvideAPIHandler(
	lgr *logger.Logger,
	auth *usecase.AuthService,
	users *usecase.UserService,
	feed *usecase.FeedService,
	access *usecase.AccessService,
	picks *usecase.PickService,
	accuracy *usecase.AccuracyService,
	apps *usecase.AppService,
	n *notifier.Notifier,
	store *irepo.SQLiteStore,
	rc *pkgcache.RedisCache,
	sink repository.AnalyticsSink,
) *api.Handler {
	health := map[string]api.HealthChecker{
		"sqlite":    store,
		"redis":     redisHealth{rc},
		"analytics": sinkHealth{sink},
	}
	return api.NewHandler(lgr, auth, users, feed, access, picks, accuracy, apps, n, health)
}

type redisHealth struct{ rc *pkgcache.RedisCache }

func (h redisHealth) Health(ctx context.Context) error {
	return h.rc.Client().Ping(ctx).Err()
}

type sinkHealth struct{ sink repository.AnalyticsSink }

func (h sinkHealth) Health(ctx context.Context) error {
	return h.sink.Health(ctx)
}

// ProvideApp assembles the application lifecycle.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	handler *api.Handler,
	sched *scheduler.Scheduler,
	feed *usecase.FeedService,
	pipeline *middleware.EventPipeline,
	processor *usecase.EventProcessor,
	qc *queue.RedisQueue,
	consumer *kafka.Consumer,
	kh kafka.MessageHandler,
	store *irepo.SQLiteStore,
	rc *pkgcache.RedisCache,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, lgr, handler, sched, feed, pipeline, processor, qc, consumer, kh, store, rc, chClient)
}
