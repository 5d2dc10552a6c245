package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"JaxSpot/internal/handler/api"
	"JaxSpot/internal/middleware"
	irepo "JaxSpot/internal/repository"
	"JaxSpot/internal/scheduler"
	"JaxSpot/internal/usecase"
	pkgcache "JaxSpot/pkg/cache"
	pkgch "JaxSpot/pkg/clickhouse"
	"JaxSpot/pkg/config"
	xhttp "JaxSpot/pkg/http"
	pkgkafka "JaxSpot/pkg/kafka"
	applogger "JaxSpot/pkg/logger"
	"JaxSpot/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    *api.Handler
	scheduler  *scheduler.Scheduler
	feed       *usecase.FeedService
	pipeline   *middleware.EventPipeline
	processor  *usecase.EventProcessor
	queue      *queue.RedisQueue
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	store      *irepo.SQLiteStore
	cache      *pkgcache.RedisCache
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler *api.Handler,
	sched *scheduler.Scheduler,
	feed *usecase.FeedService,
	pipeline *middleware.EventPipeline,
	processor *usecase.EventProcessor,
	qc *queue.RedisQueue,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	store *irepo.SQLiteStore,
	rc *pkgcache.RedisCache,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		logger:    lgr,
		handler:   handler,
		scheduler: sched,
		feed:      feed,
		pipeline:  pipeline,
		processor: processor,
		queue:     qc,
		consumer:  consumer,
		kh:        kh,
		store:     store,
		cache:     rc,
		chClient:  chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	// Usage log workers
	if err := a.queue.Start(); err != nil {
		l.Error("queue consumer start error", applogger.Error(err))
		return err
	}

	// Transition event consumer
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Event pipeline flushing
	a.pipeline.Start(ctx)

	// Feed ticks
	if err := a.scheduler.RegisterAll(a.cfg.TickInterval()); err != nil {
		l.Error("scheduler register error", applogger.Error(err))
		return err
	}
	a.scheduler.Start()
	a.scheduler.RunTickNow()
	l.Info("scheduler started", applogger.Duration("tick_interval", a.cfg.TickInterval()))

	// HTTP server
	a.httpServer = xhttp.NewServer(l, a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout.D(), a.cfg.Server.WriteTimeout.D(), a.cfg.Server.ShutdownTimeout.D()),
	)
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services in reverse start order.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout.D())
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	a.scheduler.Stop()
	a.feed.Stop()
	a.pipeline.Stop()

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if err := a.queue.Stop(shutdownCtx); err != nil {
		l.Warn("queue consumer stop error", applogger.Error(err))
	}

	if a.processor != nil {
		a.processor.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if err := a.store.Close(); err != nil {
		l.Warn("sqlite close error", applogger.Error(err))
	}

	if err := a.cache.Client().Close(); err != nil {
		l.Warn("redis close error", applogger.Error(err))
	}

	l.Info("shutdown complete")
	return nil
}
