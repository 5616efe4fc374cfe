package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MichalMitros/catalog-importer/cmd/importer/config"
	"github.com/MichalMitros/catalog-importer/internal/catalog"
	"github.com/MichalMitros/catalog-importer/internal/decoder"
	"github.com/MichalMitros/catalog-importer/internal/exporter"
	"github.com/MichalMitros/catalog-importer/internal/fetcher"
	"github.com/MichalMitros/catalog-importer/internal/handler"
	"github.com/MichalMitros/catalog-importer/internal/importer"
	"github.com/MichalMitros/catalog-importer/internal/platform/logger"
	"github.com/MichalMitros/catalog-importer/internal/platform/objectstore"
	"github.com/MichalMitros/catalog-importer/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-importer/internal/platform/registry"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage"
	"github.com/MichalMitros/catalog-importer/internal/reviews"
	"github.com/caarlos0/env/v6"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching files of queued imports.
	UserAgent = "catalog-importer/0.1.0"

	shutdownTimeout = 30 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// .env is optional, real environment wins
	_ = godotenv.Load()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	log, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().
			Err(err).
			Msg("can't create logger")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}
	store := storage.NewPostgres(pgDB)

	reg, redisClient, err := newRegistry(cfg.Registry, pgDB)
	if err != nil {
		log.Fatal().
			Err(err).
			Msg("can't create task registry")
	}

	bucket, err := objectstore.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().
			Err(err).
			Msg("can't open object storage")
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	importOps := []importer.Option{
		importer.WithMetrics(importer.NewMetrics(promRegistry)),
		importer.WithDefaultCategory(cfg.Import.DefaultCategoryID),
		importer.WithTaskTimeout(cfg.Import.TaskTimeout),
		importer.WithSyntheticReviews(cfg.Import.SyntheticReviewsEnabled, cfg.Import.Environment),
	}
	if cfg.Import.PositionalImageFallback {
		importOps = append(importOps, importer.WithPositionalImages(cfg.Import.PositionalImagesPerRow))
	}

	imp := importer.NewImporter(
		reg,
		decoder.Decoder{},
		store,
		catalog.NewReconciler(
			store,
			bucket,
			catalog.WithUploadConcurrency(cfg.Import.UploadConcurrency),
			catalog.WithProvenance(cfg.Import.BlessingTemple, cfg.Import.BlessingMaster),
		),
		reviews.NewSynthesizer(),
		&log,
		importOps...,
	)

	// start queue consumer when configured
	var amqpConnection *amqp.Connection
	var conn *rabbitmq.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		if amqpConnection, err = amqp.Dial(cfg.RabbitMQ.URL); err != nil {
			log.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		conn, err = rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange, rabbitmq.WithPrefetch(cfg.RabbitMQ.Prefetch))
		if err != nil {
			log.Fatal().
				Err(err).
				Msg("can't open RabbitMQ channel")
		}

		if err := conn.Declare(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
			log.Fatal().
				Err(err).
				Msg("can't declare RabbitMQ topology")
		}

		han := handler.NewRMQHandler(
			conn,
			fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent),
			imp,
			cfg.MaxUploadBytes,
			&log,
		)
		if err := han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
			log.Fatal().
				Err(err).
				Msg("can't start consuming")
		}
	}

	// start http server
	gin.SetMode(gin.ReleaseMode)
	httpHandler := handler.NewHTTP(
		imp,
		exporter.NewExporter(store),
		store,
		cfg.AdminToken,
		cfg.MaxUploadBytes,
		&log,
		handler.WithMetrics(promRegistry),
	)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpHandler.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().
				Err(err).
				Msg("http server failed")
			cancel()
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("registry", cfg.Registry.Driver).
		Str("storage", cfg.Storage.Driver).
		Bool("queue", conn != nil).
		Msg("catalog importer up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	log.Info().Msg("graceful shutdown start")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().
			Err(err).
			Msg("can't shut down http server")
	}

	// wait for consumer and running imports to finish
	if conn != nil {
		<-conn.Done()
	}
	imp.Wait()

	// close connections
	wg := sync.WaitGroup{}
	closers := []closer{
		{name: "Postgres connection", close: pgDB.Close},
		{name: "object storage", close: bucket.Close},
	}
	if redisClient != nil {
		closers = append(closers, closer{name: "Redis connection", close: redisClient.Close})
	}
	if amqpConnection != nil {
		closers = append(closers, closer{name: "RabbitMQ connection", close: amqpConnection.Close})
	}

	wg.Add(len(closers))
	for _, c := range closers {
		go func() {
			defer wg.Done()
			if err := c.close(); err != nil {
				log.Error().
					Err(err).
					Msgf("can't close %s", c.name)
			}
		}()
	}
	wg.Wait()

	log.Info().Msg("graceful shutdown successful")
	_ = logCloser.Close()
}

type closer struct {
	name  string
	close func() error
}

// newRegistry returns task registry of configured driver. Redis client is returned so it can be closed.
func newRegistry(cfg config.Registry, db *sql.DB) (importer.Registry, *redis.Client, error) {
	switch cfg.Driver {
	case config.RegistryMemory:
		return registry.NewMemory(), nil, nil
	case config.RegistryPostgres:
		return storage.NewTasks(db), nil, nil
	case config.RegistryRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("can't parse Redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		return registry.NewRedis(client, cfg.TaskTTL), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown registry driver %q", cfg.Driver)
	}
}
