package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/redis/go-redis/v9"

	"campaignhub/internal/cache"
	"campaignhub/internal/config"
	"campaignhub/internal/db"
	"campaignhub/internal/db/migrations"
	"campaignhub/internal/events"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
	"campaignhub/internal/metrics"
	"campaignhub/internal/repository"
	"campaignhub/internal/routes"
	"campaignhub/internal/services"
)

// @title campaignhub API
// @version 1.0
// @description Advertiser and influencer campaign marketplace.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := kitlog.NewLogfmtLogger(os.Stderr)
		level.Error(fallback).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Service: "campaignhub-api",
		Version: cfg.ServiceVersion,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		level.Error(log).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log kitlog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoCreate {
		if err := db.EnsureDatabase(ctx, cfg.DatabaseURL, log); err != nil {
			return err
		}
	}
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return err
	}
	if version, dirty, err := migrations.Version(cfg.DatabaseURL); err == nil {
		level.Info(log).Log("msg", "schema ready", "version", version, "dirty", dirty)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := services.SystemClock(loc)
	m := metrics.New()
	checks := map[string]func(context.Context) error{}

	users := repository.NewUserRepository(database.DB)
	advertisers := repository.NewAdvertiserRepository(database.DB)
	influencers := repository.NewInfluencerRepository(database.DB)
	applications := repository.NewApplicationRepository(database.DB)
	var campaigns interfaces.CampaignRepository = repository.NewCampaignRepository(database.DB)

	if cfg.CacheEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		campaignCache := cache.NewCampaignCache(client, cfg.CacheTTL)
		campaigns = cache.NewCachedCampaignRepository(campaigns, campaignCache, log)
		checks["redis"] = campaignCache.Ping
		level.Info(log).Log("msg", "campaign cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.EventsEnabled() {
		amqpPublisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		level.Info(log).Log("msg", "publishing events to amqp", "queue", cfg.AMQPQueue)
	}

	var images services.ImageStore
	if cfg.StorageEnabled() {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		images = services.NewS3ImageStore(s3Config)
	} else {
		level.Warn(log).Log("msg", "S3_BUCKET_NAME not set, image uploads disabled")
	}

	var mailer services.EmailSender = services.LogSender{Logger: log}
	if cfg.MailEnabled() {
		mailer = &services.SMTPSender{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPassword,
			From:   cfg.SMTPFrom,
			UseTLS: cfg.SMTPUseTLS,
		}
	}

	notifier := services.NewSelectionNotifier(applications, mailer, m, log)
	tokens := services.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiresInSeconds)*time.Second)
	router := routes.SetupRoutes(routes.Dependencies{
		Config:      cfg,
		DB:          database.DB,
		Logger:      log,
		Metrics:     m,
		Users:       services.NewUserService(users, advertisers, influencers, tokens, m, log),
		Advertisers: services.NewAdvertiserService(advertisers, m, log),
		Influencers: services.NewInfluencerService(influencers, clock, m, log),
		Campaigns:   services.NewCampaignService(campaigns, advertisers, images, publisher, m, log),
		Applications: services.NewApplicationService(services.ApplicationServiceDeps{
			Applications: applications,
			Campaigns:    campaigns,
			Advertisers:  advertisers,
			Influencers:  influencers,
			Notifier:     notifier,
			Events:       publisher,
			Clock:        clock,
			Metrics:      m,
			Logger:       log,
		}),
		Checks: checks,
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		level.Info(log).Log("msg", "server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	level.Info(log).Log("msg", "shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	notifier.Wait()
	return err
}
