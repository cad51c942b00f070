package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/config"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/httpapi"
	"github.com/nikolayk812/backoffice/internal/jobs"
	"github.com/nikolayk812/backoffice/internal/platform/observability"
	"github.com/nikolayk812/backoffice/internal/repository"
	"github.com/nikolayk812/backoffice/internal/service"
	"github.com/nikolayk812/backoffice/internal/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Container holds the process-wide singletons and releases them in Shutdown.
type Container struct {
	config *config.Config
	logger *zap.Logger
	tracer trace.Tracer

	pool       *pgxpool.Pool
	dispatcher *events.Dispatcher
	settings   *settings.Store
	server     *http.Server

	otelShutdown observability.ShutdownFunc
}

func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	c := &Container{
		config: cfg,
		logger: observability.NewLogger(false),
	}

	tp := c.setupObservability(ctx)

	if err := c.setupStorage(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}

	sink, err := c.newSink(tp)
	if err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	c.dispatcher = events.NewDispatcher(sink, c.logger, cfg.EventWorkers, config.EventQueueSize)

	queue, err := c.newQueue(ctx)
	if err != nil {
		c.Shutdown(ctx)
		return nil, err
	}

	c.server = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewHandler(c.newServices(queue), c.logger).Router(),
	}

	return c, nil
}

// setupObservability is best effort: exporter failures are logged and the process keeps running.
func (c *Container) setupObservability(ctx context.Context) trace.TracerProvider {
	c.tracer = otel.Tracer(config.ServiceName)

	if !c.config.OtelEnabled() {
		return otel.GetTracerProvider()
	}

	logShutdown, err := observability.SetupLoggingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("failed to setup OpenTelemetry logging", zap.Error(err))
	}

	tp, traceShutdown, err := observability.SetupTracingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("failed to setup OpenTelemetry tracing", zap.Error(err))
	}

	c.otelShutdown = observability.JoinShutdown(traceShutdown, logShutdown)
	c.logger = observability.NewLogger(logShutdown != nil)
	c.tracer = otel.Tracer(config.ServiceName)

	if tp == nil {
		return otel.GetTracerProvider()
	}
	return tp
}

func (c *Container) setupStorage(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, c.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	c.pool = pool

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}

	c.settings = settings.NewStore(repository.NewSetting(pool), c.logger)
	if err := c.settings.Reload(ctx); err != nil {
		return fmt.Errorf("settings.Reload: %w", err)
	}

	return nil
}

func (c *Container) newSink(tp trace.TracerProvider) (events.Sink, error) {
	if !c.config.KafkaEnabled() {
		c.logger.Info("KAFKA_BROKER not set, events are logged only")
		return events.NewLogSink(c.logger), nil
	}

	audit, err := events.NewKafkaProducer(c.config.KafkaBroker, c.config.AuditTopic, config.ServiceName, tp)
	if err != nil {
		return nil, fmt.Errorf("events.NewKafkaProducer[%s]: %w", c.config.AuditTopic, err)
	}

	notifications, err := events.NewKafkaProducer(c.config.KafkaBroker, c.config.NotificationTopic, config.ServiceName, tp)
	if err != nil {
		_ = audit.Close()
		return nil, fmt.Errorf("events.NewKafkaProducer[%s]: %w", c.config.NotificationTopic, err)
	}

	return events.NewKafkaSink(audit, notifications), nil
}

func (c *Container) newQueue(ctx context.Context) (*jobs.Queue, error) {
	var sender jobs.Sender

	if c.config.SQSEnabled() {
		sqsSender, err := jobs.NewSQSSenderFromEnv(ctx, c.config.AWSRegion, c.config.SQSQueueURL)
		if err != nil {
			return nil, fmt.Errorf("jobs.NewSQSSenderFromEnv: %w", err)
		}
		sender = sqsSender
	} else {
		c.logger.Info("SQS_QUEUE_URL not set, jobs stay queued")
	}

	return jobs.NewQueue(repository.NewJob(c.pool), sender, c.logger), nil
}

func (c *Container) newServices(queue *jobs.Queue) httpapi.Services {
	var (
		transactor = repository.NewTransactor(c.pool)
		products   = repository.NewProduct(c.pool)
		inventory  = repository.NewInventory(c.pool)
		orders     = repository.NewOrder(c.pool)
		payments   = repository.NewPayment(c.pool)
		alerts     = service.NewLowStockAlerts(c.settings, c.dispatcher, c.dispatcher, queue, c.logger)
	)

	return httpapi.Services{
		Orders:    service.NewOrderService(transactor, orders, alerts, c.dispatcher, c.logger, c.tracer),
		Payments:  service.NewPaymentService(transactor, orders, payments, c.dispatcher, c.logger, c.tracer),
		Inventory: service.NewInventoryService(inventory, alerts, c.dispatcher, c.logger, c.tracer),
		Products:  service.NewProductService(products, c.dispatcher, c.logger, c.tracer),
		Jobs:      queue,
		Settings:  c.settings,
	}
}

// Shutdown releases resources in reverse start order. Pending events are
// delivered before the sink and the pool go away.
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("shutting down")

	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			c.logger.Error("failed to close event dispatcher", zap.Error(err))
		}
	}

	if c.pool != nil {
		c.pool.Close()
	}

	if c.otelShutdown != nil {
		if err := c.otelShutdown(ctx); err != nil {
			c.logger.Error("failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}

	_ = c.logger.Sync()
}

func (c *Container) Logger() *zap.Logger    { return c.logger }
func (c *Container) Server() *http.Server   { return c.server }
func (c *Container) Config() *config.Config { return c.config }
