package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/BearBump/FreightSite/config"
	siteapi "github.com/BearBump/FreightSite/internal/api/site_api"
	"github.com/BearBump/FreightSite/internal/broker/kafka"
	"github.com/BearBump/FreightSite/internal/cache"
	"github.com/BearBump/FreightSite/internal/cache/rediscache"
	"github.com/BearBump/FreightSite/internal/forms"
	"github.com/BearBump/FreightSite/internal/models"
	"github.com/BearBump/FreightSite/internal/services/submissions"
	"github.com/BearBump/FreightSite/internal/services/tracking"
	"github.com/BearBump/FreightSite/internal/storage/pgstore"
	"github.com/BearBump/FreightSite/internal/storage/sqlitestore"
	"github.com/BearBump/FreightSite/internal/web"
)

// siteStore: что сайту нужно от хранилища, независимо от драйвера.
type siteStore interface {
	GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error)
	Insert(ctx context.Context, table string, row models.Row) (models.Row, error)
	Ping(ctx context.Context) error
	Close()
}

type siteApp struct {
	ctx      context.Context
	cancel   context.CancelFunc
	opts     siteOpts
	api      *siteapi.SiteAPI
	tracking *tracking.Service
	forms    *forms.Registry
	consumer *kafka.Consumer
	closers  []func()
}

func mustBootstrapSite() *siteApp {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(fmt.Sprintf("ошибка чтения .env, %v", err))
	}

	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	setupLogger(cfg.Log)

	httpAddr := cfg.Site.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	swaggerPath := cfg.Site.SwaggerPath
	if swaggerPath == "" {
		swaggerPath = os.Getenv("swaggerPath")
	}
	consumerGroup := cfg.Site.KafkaConsumerGroup
	if consumerGroup == "" {
		consumerGroup = "freightsite"
	}
	updatedTopic := cfg.Kafka.ShipmentUpdatedTopicName
	if updatedTopic == "" {
		updatedTopic = "shipment.updated"
	}
	createdTopic := cfg.Kafka.SubmissionCreatedTopicName
	if createdTopic == "" {
		createdTopic = "submission.created"
	}
	cacheTTL := secondsOr(cfg.Site.ShipmentCacheTTLSeconds, 5*time.Minute)
	requestTimeout := secondsOr(cfg.Site.RequestTimeoutSeconds, 10*time.Second)
	bannerDelay := secondsOr(cfg.Site.SuccessBannerSeconds, forms.DefaultSuccessDelay)
	sessionIdle := secondsOr(cfg.Site.FormSessionIdleSeconds, 30*time.Minute)
	connectWait := secondsOr(cfg.Database.ConnectTimeoutSeconds, 60*time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := &siteApp{ctx: ctx, cancel: cancel}

	st := mustOpenStore(ctx, cfg.Database, connectWait)
	app.closers = append(app.closers, st.Close)

	readyChecks := map[string]siteapi.ReadyCheck{"store": st.Ping}

	var (
		shipmentCache cache.BytesCache
		limiter       cache.Limiter
	)
	if cfg.Redis.Enabled() {
		rc := rediscache.NewWithClient(redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()}))
		shipmentCache = rc
		limiter = rediscache.NewRateLimiterWithClient(rc.Client())
		readyChecks["redis"] = rc.Ping
		app.closers = append(app.closers, func() { _ = rc.Close() })
	} else {
		slog.Warn("redis is not configured: shipment cache and submit rate limit are off")
	}

	var publisher submissions.Publisher
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers())
		publisher = producer
		app.consumer = kafka.NewConsumer(cfg.Kafka.Brokers(), updatedTopic, consumerGroup)
		app.closers = append(app.closers, func() { _ = producer.Close() }, func() { _ = app.consumer.Close() })
	} else {
		slog.Warn("kafka is not configured: cache invalidation and submission events are off")
	}

	pages, err := web.New()
	if err != nil {
		panic(err)
	}

	app.tracking = tracking.New(st, shipmentCache, cacheTTL)
	app.forms = forms.NewRegistry(bannerDelay, sessionIdle)
	app.api = siteapi.New(
		app.tracking,
		submissions.New(st, publisher, createdTopic),
		app.forms,
		pages,
		siteapi.Options{
			SwaggerPath:    swaggerPath,
			RequestTimeout: requestTimeout,
			Limiter:        limiter,
			SubmitLimit:    int64(cfg.Site.SubmitRateLimitPerMinute),
			ReadyChecks:    readyChecks,
		},
	)
	app.opts = siteOpts{
		httpAddr:      httpAddr,
		topic:         updatedTopic,
		consumerGroup: consumerGroup,
		sweepEvery:    time.Minute,
	}
	return app
}

func mustOpenStore(ctx context.Context, cfg config.DatabaseConfig, connectWait time.Duration) siteStore {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		st, err := sqlitestore.New(ctx, cfg.SQLitePath)
		if err != nil {
			panic(fmt.Sprintf("sqlite: %v", err))
		}
		slog.Info("store opened", "driver", "sqlite", "path", cfg.SQLitePath)
		return st
	case "", "postgres":
		st, err := pgstore.New(ctx, cfg.PostgresDSN(), connectWait)
		if err != nil {
			panic(err)
		}
		slog.Info("store opened", "driver", "postgres", "host", cfg.Host, "db", cfg.DBName)
		return st
	default:
		panic(fmt.Sprintf("unknown database driver %q", cfg.Driver))
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func secondsOr(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func (a *siteApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *siteApp) Run() error {
	var consumer kafkaConsumer
	if a.consumer != nil {
		consumer = a.consumer
	}
	return runSite(a.ctx, a.opts, a.api.Router(), a.tracking, consumer, a.forms)
}
